package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultHandoverTimeout is how long the next courier has to acknowledge
// pickup at a relay point before custody reverts to the original holder.
const DefaultHandoverTimeout = 30 * time.Minute

// ErrPendingHandoverIsNotConstructed is returned when using an improperly
// initialized PendingHandover.
var ErrPendingHandoverIsNotConstructed = errors.New(
	"PendingHandover must be created via NewPendingHandover constructor")

// PendingHandover records an initiated but not yet acknowledged custody
// transfer at a relay point. The original holder stays accountable for the
// parcel until the next courier acknowledges pickup or the deadline passes.
type PendingHandover struct {
	nextCourierID kernel.UUID
	relayPoint    kernel.GeoPoint
	deadline      time.Time

	guard guard.ConstructorGuard
}

// NewPendingHandover records a custody transfer awaiting acknowledgement.
func NewPendingHandover(
	nextCourierID kernel.UUID,
	relayPoint kernel.GeoPoint,
	deadline time.Time,
) (*PendingHandover, error) {
	if err := nextCourierID.Validate(); err != nil {
		return nil, err
	}
	if err := relayPoint.Validate(); err != nil {
		return nil, err
	}
	if deadline.IsZero() {
		return nil, errs.NewValueIsRequiredError("deadline")
	}

	return &PendingHandover{
		nextCourierID: nextCourierID,
		relayPoint:    relayPoint,
		deadline:      deadline,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the instance was properly constructed.
func (h *PendingHandover) Validate() error {
	if h == nil {
		return ErrPendingHandoverIsNotConstructed
	}
	return h.guard.Validate(ErrPendingHandoverIsNotConstructed)
}

// NextCourierID returns the courier expected to take over custody.
func (h *PendingHandover) NextCourierID() kernel.UUID {
	return h.nextCourierID
}

// RelayPoint returns the hub where the transfer takes place.
func (h *PendingHandover) RelayPoint() kernel.GeoPoint {
	return h.relayPoint
}

// Deadline returns the acknowledgement deadline.
func (h *PendingHandover) Deadline() time.Time {
	return h.deadline
}

// IsExpired reports whether the acknowledgement window has passed.
func (h *PendingHandover) IsExpired(at time.Time) bool {
	return at.After(h.deadline)
}
