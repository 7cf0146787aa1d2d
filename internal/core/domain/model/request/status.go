package request

import (
	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery request.
// It implements a state machine with defined transitions so requests follow
// the marketplace workflow.
//
// State transitions:
//
//	Draft ──> Open ──> Matched ──> InFulfillment ──> Completed
//	           │          │              │
//	           └──────────┴──────> Cancelled
//
// Cancellation from InFulfillment is only reachable through delivery
// cancellation, which the fulfillment state machine permits before the first
// acknowledged relay handover.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status: the request exists but is not yet visible
	// to couriers.
	Draft

	// Open means the request accepts bids.
	Open

	// Matched means a winning bid has been accepted and a delivery created.
	Matched

	// InFulfillment means the assigned courier has started transit.
	InFulfillment

	// Completed is the terminal success state.
	Completed

	// Cancelled is the terminal cancellation state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Draft:         "Draft",
		Open:          "Open",
		Matched:       "Matched",
		InFulfillment: "InFulfillment",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:         "Draft",
		Open:          "Open",
		Matched:       "Matched",
		InFulfillment: "InFulfillment",
		Completed:     "Completed",
		Cancelled:     "Cancelled",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Publish transitions the status to Open.
//
// Valid transitions:
//   - Draft -> Open
func (s Status) Publish() (Status, error) {
	if s != Draft {
		return 0, errs.NewInvalidStateError("deliveryRequest", Draft.String(), s.String())
	}
	return Open, nil
}

// Match transitions the status to Matched when a bid is accepted.
//
// Valid transitions:
//   - Open -> Matched
func (s Status) Match() (Status, error) {
	if s != Open {
		return 0, errs.NewInvalidStateError("deliveryRequest", Open.String(), s.String())
	}
	return Matched, nil
}

// StartFulfillment transitions the status to InFulfillment when the assigned
// courier starts transit.
//
// Valid transitions:
//   - Matched -> InFulfillment
func (s Status) StartFulfillment() (Status, error) {
	if s != Matched {
		return 0, errs.NewInvalidStateError("deliveryRequest", Matched.String(), s.String())
	}
	return InFulfillment, nil
}

// Complete transitions the status to Completed when the delivery is validated.
//
// Valid transitions:
//   - InFulfillment -> Completed
func (s Status) Complete() (Status, error) {
	if s != InFulfillment {
		return 0, errs.NewInvalidStateError("deliveryRequest", InFulfillment.String(), s.String())
	}
	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Open -> Cancelled
//   - Matched -> Cancelled
//   - InFulfillment -> Cancelled (cascaded from delivery cancellation only)
func (s Status) Cancel() (Status, error) {
	if s != Open && s != Matched && s != InFulfillment {
		return 0, errs.NewInvalidStateError("deliveryRequest", "Open or Matched", s.String())
	}
	return Cancelled, nil
}
