package bid

import (
	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a bid.
//
// State transitions:
//
//	Pending ──┬──> Accepted
//	          ├──> Rejected
//	          └──> Withdrawn
//
// All three outcomes are terminal; only a pending bid can change state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a submitted bid.
	Pending

	// Accepted means the requester chose this bid; at most one bid per
	// request ever reaches this state.
	Accepted

	// Rejected means the requester declined the bid, either explicitly or
	// implicitly when a sibling bid was accepted.
	Rejected

	// Withdrawn means the courier retracted the bid before a decision.
	Withdrawn
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Withdrawn: "Withdrawn",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s < Pending || s > Withdrawn {
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

// Accept transitions the status to Accepted. Valid only from Pending.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("bid", Pending.String(), s.String())
	}
	return Accepted, nil
}

// Reject transitions the status to Rejected. Valid only from Pending.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("bid", Pending.String(), s.String())
	}
	return Rejected, nil
}

// Withdraw transitions the status to Withdrawn. Valid only from Pending.
func (s Status) Withdraw() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateError("bid", Pending.String(), s.String())
	}
	return Withdrawn, nil
}
