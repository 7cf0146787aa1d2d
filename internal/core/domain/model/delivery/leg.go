package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrLegIsNotConstructed is returned when using an improperly initialized Leg.
var ErrLegIsNotConstructed = errors.New("Leg must be created via NewLeg constructor")

// Leg is one custody segment of a delivery: a single courier carrying the
// parcel from one point to another. The delivery owns its legs and keeps the
// chain contiguous: each leg starts where the previous one ended.
type Leg struct {
	holderID  kernel.UUID
	from      kernel.GeoPoint
	to        kernel.GeoPoint
	startedAt time.Time
	endedAt   *time.Time

	guard guard.ConstructorGuard
}

// NewLeg opens a custody segment for the given holder.
func NewLeg(
	holderID kernel.UUID,
	from kernel.GeoPoint,
	to kernel.GeoPoint,
	startedAt time.Time,
) (*Leg, error) {
	l := &Leg{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setHolderID(holderID),
		l.setFrom(from),
		l.setTo(to),
		l.setStartedAt(startedAt),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLeg reconstructs a Leg from persistence, including a closed end
// timestamp when present.
func RestoreLeg(
	holderID kernel.UUID,
	from kernel.GeoPoint,
	to kernel.GeoPoint,
	startedAt time.Time,
	endedAt *time.Time,
) (*Leg, error) {
	l, err := NewLeg(holderID, from, to, startedAt)
	if err != nil {
		return nil, err
	}

	if endedAt != nil {
		if endedAt.Before(startedAt) {
			return nil, errs.NewValueIsInvalidError("endedAt")
		}
		end := *endedAt
		l.endedAt = &end
	}

	return l, nil
}

// Validate ensures the instance was properly constructed.
func (l *Leg) Validate() error {
	if l == nil {
		return ErrLegIsNotConstructed
	}
	return l.guard.Validate(ErrLegIsNotConstructed)
}

// HolderID returns the courier responsible for this segment.
func (l *Leg) HolderID() kernel.UUID {
	return l.holderID
}

// From returns the segment's starting point.
func (l *Leg) From() kernel.GeoPoint {
	return l.from
}

// To returns the segment's planned end point. For an open leg this is the
// destination the holder is heading to; closing the leg may shorten it to a
// relay point.
func (l *Leg) To() kernel.GeoPoint {
	return l.to
}

// StartedAt returns the time custody began.
func (l *Leg) StartedAt() time.Time {
	return l.startedAt
}

// EndedAt returns the time custody ended, or nil while the leg is open.
func (l *Leg) EndedAt() *time.Time {
	if l.endedAt == nil {
		return nil
	}
	end := *l.endedAt
	return &end
}

// IsOpen reports whether the holder still has custody on this leg.
func (l *Leg) IsOpen() bool {
	return l.endedAt == nil
}

// close ends the leg at the given point and time. The end point replaces the
// planned destination so relay handovers shorten the leg to the relay.
func (l *Leg) close(at kernel.GeoPoint, endedAt time.Time) error {
	if l.endedAt != nil {
		return errs.NewInvalidStateError("leg", "open", "closed")
	}
	if endedAt.Before(l.startedAt) {
		return errs.NewValueIsInvalidError("endedAt")
	}
	if err := at.Validate(); err != nil {
		return err
	}

	l.to = at
	end := endedAt
	l.endedAt = &end
	return nil
}

func (l *Leg) setHolderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.holderID = id
	return nil
}

func (l *Leg) setFrom(from kernel.GeoPoint) error {
	if err := from.Validate(); err != nil {
		return err
	}
	l.from = from
	return nil
}

func (l *Leg) setTo(to kernel.GeoPoint) error {
	if err := to.Validate(); err != nil {
		return err
	}
	l.to = to
	return nil
}

func (l *Leg) setStartedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("startedAt")
	}
	l.startedAt = t
	return nil
}
