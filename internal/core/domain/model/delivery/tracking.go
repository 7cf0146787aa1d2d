package delivery

import (
	"time"

	"dispatch/internal/pkg/errs"
)

// TrackingEvent is one entry in a delivery's audit trail. Events are
// appended by the aggregate on every state change and never modified.
type TrackingEvent struct {
	status Status
	note   string
	at     time.Time
}

// NewTrackingEvent records a state change with an optional note.
func NewTrackingEvent(status Status, note string, at time.Time) (TrackingEvent, error) {
	if err := status.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if at.IsZero() {
		return TrackingEvent{}, errs.NewValueIsRequiredError("at")
	}

	return TrackingEvent{status: status, note: note, at: at}, nil
}

// Status returns the delivery status after the change.
func (e TrackingEvent) Status() Status {
	return e.status
}

// Note returns the free-form annotation, if any.
func (e TrackingEvent) Note() string {
	return e.note
}

// At returns when the change happened.
func (e TrackingEvent) At() time.Time {
	return e.at
}
