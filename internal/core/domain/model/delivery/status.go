package delivery

import (
	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions to ensure
// deliveries follow the correct custody workflow.
//
// State transitions:
//
//	Assigned ──> InTransit ──┬──> AtRelay ──> InTransit (new holder, repeatable)
//	    │            │       ├──> Delivered
//	    │            │       └──> Disputed
//	    └────────────┴──> Cancelled (only before the first acknowledged handover)
//
// Delivered, Disputed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Assigned is the initial status after a winning bid creates the delivery.
	// The parcel has not been picked up yet.
	Assigned

	// InTransit means a courier currently holds the parcel and is moving it.
	InTransit

	// AtRelay means custody transfer at a relay point has been initiated and
	// awaits acknowledgement by the next courier.
	AtRelay

	// Delivered means the recipient confirmed receipt with the validation
	// code. Terminal success state.
	Delivered

	// Disputed means the delivery could not be confirmed (expired validation
	// code or manual escalation) and requires resolution. Terminal.
	Disputed

	// Cancelled means the delivery was called off before any relay handover
	// was acknowledged. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Assigned:  "Assigned",
		InTransit: "InTransit",
		AtRelay:   "AtRelay",
		Delivered: "Delivered",
		Disputed:  "Disputed",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s < Assigned || s > Cancelled {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Disputed || s == Cancelled
}

// StartTransit transitions the status to InTransit. Valid only from Assigned.
func (s Status) StartTransit() (Status, error) {
	if s != Assigned {
		return 0, errs.NewInvalidStateError("delivery", Assigned.String(), s.String())
	}
	return InTransit, nil
}

// Handover transitions the status to AtRelay. Valid only from InTransit.
func (s Status) Handover() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidStateError("delivery", InTransit.String(), s.String())
	}
	return AtRelay, nil
}

// ResumeTransit transitions the status back to InTransit after a relay
// acknowledgement or a rejected handover. Valid only from AtRelay.
func (s Status) ResumeTransit() (Status, error) {
	if s != AtRelay {
		return 0, errs.NewInvalidStateError("delivery", AtRelay.String(), s.String())
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered. Valid only from InTransit.
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, errs.NewInvalidStateError("delivery", InTransit.String(), s.String())
	}
	return Delivered, nil
}

// Dispute transitions the status to Disputed. Valid from InTransit or AtRelay.
func (s Status) Dispute() (Status, error) {
	if s != InTransit && s != AtRelay {
		return 0, errs.NewInvalidStateError("delivery", InTransit.String(), s.String())
	}
	return Disputed, nil
}

// Cancel transitions the status to Cancelled. Valid from Assigned or
// InTransit; the aggregate additionally forbids cancellation after the first
// acknowledged relay handover.
func (s Status) Cancel() (Status, error) {
	if s != Assigned && s != InTransit {
		return 0, errs.NewInvalidStateError("delivery", Assigned.String(), s.String())
	}
	return Cancelled, nil
}
