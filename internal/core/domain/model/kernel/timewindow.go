package kernel

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when attempting to use an
// improperly initialized TimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow constructor")

// TimeWindow represents a half-open time interval [From, Until).
// TimeWindow is an immutable value object used for delivery request windows
// and courier departure windows.
type TimeWindow struct { //nolint:recvcheck //using for validation
	from  time.Time
	until time.Time
	guard guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow from the given bounds.
// Both bounds are required and from must be strictly before until.
func NewTimeWindow(from, until time.Time) (TimeWindow, error) {
	w := TimeWindow{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setFrom(from), w.setUntil(until)); err != nil {
		return TimeWindow{}, err
	}

	if !w.from.Before(w.until) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window",
			fmt.Errorf("from %s is not before until %s", from, until))
	}

	return w, nil
}

// Validate checks if the TimeWindow was properly constructed via NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// From returns the inclusive lower bound.
func (w TimeWindow) From() time.Time {
	return w.from
}

// Until returns the exclusive upper bound.
func (w TimeWindow) Until() time.Time {
	return w.until
}

// Duration returns the length of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.until.Sub(w.from)
}

// Contains reports whether t lies within the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.from) && t.Before(w.until)
}

// Overlaps reports whether the two windows share any instant.
func (w TimeWindow) Overlaps(other TimeWindow) (bool, error) {
	if err := errors.Join(w.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return w.from.Before(other.until) && other.from.Before(w.until), nil
}

// Overlap returns the shared duration of the two windows, zero when disjoint.
func (w TimeWindow) Overlap(other TimeWindow) (time.Duration, error) {
	ok, err := w.Overlaps(other)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	start := w.from
	if other.from.After(start) {
		start = other.from
	}
	end := w.until
	if other.until.Before(end) {
		end = other.until
	}

	return end.Sub(start), nil
}

// String returns a human-readable representation of the window.
func (w TimeWindow) String() string {
	return fmt.Sprintf("TimeWindow[%s, %s)", w.from.Format(time.RFC3339), w.until.Format(time.RFC3339))
}

func (w *TimeWindow) setFrom(from time.Time) error {
	if from.IsZero() {
		return errs.NewValueIsRequiredError("from")
	}

	w.from = from
	return nil
}

func (w *TimeWindow) setUntil(until time.Time) error {
	if until.IsZero() {
		return errs.NewValueIsRequiredError("until")
	}

	w.until = until
	return nil
}
