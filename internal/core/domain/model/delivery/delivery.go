package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// maxValidationAttempts is the number of consecutive mismatched codes
	// tolerated before validation is locked.
	maxValidationAttempts = 5

	// ValidationLockout is how long validation stays locked after too many
	// mismatched codes.
	ValidationLockout = 15 * time.Minute
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly
	// initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrHandoverToSelf is returned when a courier initiates a relay handover
	// naming themselves as the next holder.
	ErrHandoverToSelf = errs.NewValueIsInvalidError("next courier must differ from current holder")

	// ErrNoPendingHandover is returned when acknowledging a pickup while no
	// handover is awaiting acknowledgement.
	ErrNoPendingHandover = errors.New("no pending handover to acknowledge")
)

// Delivery is the aggregate root of the fulfillment state machine. It owns
// the ordered custody legs, the pending relay handover (if any) and the
// validation code proving receipt at the final drop point.
//
// Key business rules:
//   - The leg chain is contiguous: each leg starts where the previous ended
//   - Custody never goes unaccounted: a relay handover keeps the original
//     holder responsible until the next courier acknowledges pickup
//   - The validation code is single-use, compared in constant time, and
//     brute-force attempts trigger a timed lockout
//   - Cancellation is only possible before the first acknowledged handover;
//     afterwards the delivery can only end Delivered or Disputed
type Delivery struct {
	id        kernel.UUID
	requestID kernel.UUID
	holderID  kernel.UUID
	pickup    kernel.GeoPoint
	drop      kernel.GeoPoint
	status    Status

	legs            []*Leg
	pendingHandover *PendingHandover

	validationCode *ValidationCode
	failedAttempts int
	lockedUntil    *time.Time

	acknowledgedHandovers int
	cancelReason          string
	tracking              []TrackingEvent

	version int64
	guard   guard.ConstructorGuard
}

// NewDelivery creates a Delivery in Assigned status for the winning courier.
// It is created as a side effect of accepting a bid, in the same transaction.
func NewDelivery(
	id kernel.UUID,
	requestID kernel.UUID,
	courierID kernel.UUID,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	at time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status: Assigned,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setRequestID(requestID),
		d.setHolderID(courierID),
		d.setPickup(pickup),
		d.setDrop(drop),
	); err != nil {
		return nil, err
	}

	if err := d.appendTracking(Assigned, "", at); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage,
// including its legs, pending handover, validation state and version.
func RestoreDelivery(
	id kernel.UUID,
	requestID kernel.UUID,
	holderID kernel.UUID,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	status Status,
	legs []*Leg,
	pendingHandover *PendingHandover,
	validationCode *ValidationCode,
	failedAttempts int,
	lockedUntil *time.Time,
	acknowledgedHandovers int,
	cancelReason string,
	tracking []TrackingEvent,
	version int64,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setRequestID(requestID),
		d.setHolderID(holderID),
		d.setPickup(pickup),
		d.setDrop(drop),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("version")
	}
	if failedAttempts < 0 {
		return nil, errs.NewValueIsInvalidError("failedAttempts")
	}
	if acknowledgedHandovers < 0 {
		return nil, errs.NewValueIsInvalidError("acknowledgedHandovers")
	}

	for _, leg := range legs {
		if err := leg.Validate(); err != nil {
			return nil, err
		}
	}
	if pendingHandover != nil {
		if err := pendingHandover.Validate(); err != nil {
			return nil, err
		}
	}
	if validationCode != nil {
		if err := validationCode.Validate(); err != nil {
			return nil, err
		}
	}

	d.status = status
	d.legs = make([]*Leg, len(legs))
	copy(d.legs, legs)
	d.pendingHandover = pendingHandover
	d.validationCode = validationCode
	d.failedAttempts = failedAttempts
	if lockedUntil != nil {
		until := *lockedUntil
		d.lockedUntil = &until
	}
	d.acknowledgedHandovers = acknowledgedHandovers
	d.cancelReason = cancelReason
	d.tracking = make([]TrackingEvent, len(tracking))
	copy(d.tracking, tracking)
	d.version = version

	return d, nil
}

// Validate checks if the Delivery was properly constructed.
// The zero value is invalid and will fail this validation.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// RequestID returns the identifier of the originating delivery request.
func (d *Delivery) RequestID() kernel.UUID {
	return d.requestID
}

// HolderID returns the courier currently accountable for the parcel.
func (d *Delivery) HolderID() kernel.UUID {
	return d.holderID
}

// Pickup returns the original pickup point.
func (d *Delivery) Pickup() kernel.GeoPoint {
	return d.pickup
}

// Drop returns the final drop point.
func (d *Delivery) Drop() kernel.GeoPoint {
	return d.drop
}

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status {
	return d.status
}

// Legs returns the custody chain in order. The returned slice is a copy.
func (d *Delivery) Legs() []*Leg {
	out := make([]*Leg, len(d.legs))
	copy(out, d.legs)
	return out
}

// PendingHandover returns the handover awaiting acknowledgement, or nil.
func (d *Delivery) PendingHandover() *PendingHandover {
	return d.pendingHandover
}

// ValidationCode returns the issued code, or nil if none was generated or it
// was already consumed.
func (d *Delivery) ValidationCode() *ValidationCode {
	return d.validationCode
}

// FailedAttempts returns the consecutive mismatched validation attempts.
func (d *Delivery) FailedAttempts() int {
	return d.failedAttempts
}

// LockedUntil returns the end of the validation lockout window, or nil.
func (d *Delivery) LockedUntil() *time.Time {
	if d.lockedUntil == nil {
		return nil
	}
	until := *d.lockedUntil
	return &until
}

// AcknowledgedHandovers returns how many relay handovers have been
// acknowledged. Cancellation is only allowed while this is zero.
func (d *Delivery) AcknowledgedHandovers() int {
	return d.acknowledgedHandovers
}

// CancelReason returns the reason given on cancellation, if any.
func (d *Delivery) CancelReason() string {
	return d.cancelReason
}

// Tracking returns the audit trail in order. The returned slice is a copy.
func (d *Delivery) Tracking() []TrackingEvent {
	out := make([]TrackingEvent, len(d.tracking))
	copy(out, d.tracking)
	return out
}

// Version returns the optimistic concurrency version.
func (d *Delivery) Version() int64 {
	return d.version
}

// CurrentLeg returns the open custody leg, or nil before transit starts or
// after the delivery reaches a terminal state.
func (d *Delivery) CurrentLeg() *Leg {
	if len(d.legs) == 0 {
		return nil
	}
	last := d.legs[len(d.legs)-1]
	if last.IsOpen() {
		return last
	}
	return nil
}

// StartTransit opens the first custody leg. Valid only from Assigned, and
// only for the assigned courier.
func (d *Delivery) StartTransit(courierID kernel.UUID, at time.Time) error {
	if !courierID.IsEqual(d.holderID) {
		return errs.NewUnauthorizedError(courierID.String(), "start transit")
	}

	newStatus, err := d.status.StartTransit()
	if err != nil {
		return err
	}

	leg, err := NewLeg(d.holderID, d.pickup, d.drop, at)
	if err != nil {
		return err
	}

	d.legs = append(d.legs, leg)
	d.status = newStatus
	return d.appendTracking(newStatus, "", at)
}

// HandoverAtRelay initiates a custody transfer at a relay point. Valid only
// from InTransit and only for the current holder. The current leg stays open
// and the holder stays accountable until the next courier acknowledges
// pickup or the timeout passes.
func (d *Delivery) HandoverAtRelay(
	courierID kernel.UUID,
	nextCourierID kernel.UUID,
	relayPoint kernel.GeoPoint,
	at time.Time,
	ackTimeout time.Duration,
) error {
	if !courierID.IsEqual(d.holderID) {
		return errs.NewUnauthorizedError(courierID.String(), "handover at relay")
	}
	if nextCourierID.IsEqual(d.holderID) {
		return ErrHandoverToSelf
	}
	// An issued code marks the chain as final: it is bound to the leg it was
	// issued on, so extending the chain would strand it.
	if d.validationCode != nil {
		return errs.NewInvalidStateError(
			"delivery", "no validation code issued", "code already issued")
	}
	if ackTimeout <= 0 {
		ackTimeout = DefaultHandoverTimeout
	}

	newStatus, err := d.status.Handover()
	if err != nil {
		return err
	}

	pending, err := NewPendingHandover(nextCourierID, relayPoint, at.Add(ackTimeout))
	if err != nil {
		return err
	}

	d.pendingHandover = pending
	d.status = newStatus
	return d.appendTracking(newStatus, "handover initiated at "+relayPoint.Address(), at)
}

// AcknowledgePickup completes a relay handover: the current leg is closed at
// the relay point and a new leg opens under the next courier. If the
// acknowledgement deadline has passed, custody reverts to the original
// holder and HandoverRejected is returned.
func (d *Delivery) AcknowledgePickup(courierID kernel.UUID, at time.Time) error {
	if d.status != AtRelay || d.pendingHandover == nil {
		return errs.NewInvalidStateError("delivery", AtRelay.String(), d.status.String())
	}
	if !courierID.IsEqual(d.pendingHandover.NextCourierID()) {
		return errs.NewUnauthorizedError(courierID.String(), "acknowledge pickup")
	}

	if d.pendingHandover.IsExpired(at) {
		deadline := d.pendingHandover.Deadline()
		if err := d.revertHandover(at); err != nil {
			return err
		}
		return errs.NewHandoverRejectedError(d.id.String(), deadline)
	}

	relayPoint := d.pendingHandover.RelayPoint()

	current := d.CurrentLeg()
	if current == nil {
		return errs.NewInvalidStateError("delivery", "open leg", "no open leg")
	}
	if err := current.close(relayPoint, at); err != nil {
		return err
	}

	leg, err := NewLeg(courierID, relayPoint, d.drop, at)
	if err != nil {
		return err
	}

	newStatus, err := d.status.ResumeTransit()
	if err != nil {
		return err
	}

	d.legs = append(d.legs, leg)
	d.holderID = courierID
	d.pendingHandover = nil
	d.acknowledgedHandovers++
	d.status = newStatus
	return d.appendTracking(newStatus, "custody transferred at "+relayPoint.Address(), at)
}

// ExpireStaleHandover reverts an unacknowledged handover whose deadline has
// passed, returning custody to the original holder. It reports whether a
// reversion happened. Safe to call from a periodic sweep; deadlines are also
// enforced at acknowledgement time, so the sweep only speeds up visibility.
func (d *Delivery) ExpireStaleHandover(at time.Time) (bool, error) {
	if d.status != AtRelay || d.pendingHandover == nil {
		return false, nil
	}
	if !d.pendingHandover.IsExpired(at) {
		return false, nil
	}

	if err := d.revertHandover(at); err != nil {
		return false, err
	}
	return true, nil
}

// GenerateValidationCode issues the single-use proof-of-delivery code when
// the delivery is on its final leg. Valid only from InTransit with no
// handover pending, and only once per delivery. The code is bound to the
// open leg; once issued, further relay handovers are refused. Returns the
// plaintext code for handing to the recipient.
func (d *Delivery) GenerateValidationCode(at time.Time, ttl time.Duration) (string, error) {
	if d.status != InTransit {
		return "", errs.NewInvalidStateError("delivery", InTransit.String(), d.status.String())
	}
	if d.validationCode != nil {
		return "", errs.NewInvalidStateError("delivery", "no validation code issued", "code already issued")
	}
	if ttl <= 0 {
		ttl = DefaultCodeTTL
	}

	code, err := NewValidationCode(at, ttl, len(d.legs)-1)
	if err != nil {
		return "", err
	}

	d.validationCode = code
	return code.Code(), nil
}

// ConfirmDelivery checks a submitted validation code and, on match, closes
// the final leg and transitions to Delivered.
//
// Mismatch handling:
//   - A plain mismatch increments the consecutive-failure counter
//   - The fifth consecutive mismatch locks validation for ValidationLockout
//   - Attempts during the lockout, and attempts on an expired code, return
//     ValidationLocked without revealing which condition triggered it
//   - An expired code additionally moves the delivery to Disputed
func (d *Delivery) ConfirmDelivery(submittedCode string, at time.Time) error {
	if d.status != InTransit {
		return errs.NewInvalidStateError("delivery", InTransit.String(), d.status.String())
	}
	if d.validationCode == nil {
		return errs.NewInvalidStateError("delivery", "validation code issued", "no code issued")
	}
	// The code only proves receipt on the leg it was issued for.
	if d.validationCode.LegIndex() != len(d.legs)-1 {
		return errs.NewInvalidStateError(
			"delivery", "code bound to current leg", "code bound to earlier leg")
	}

	if d.lockedUntil != nil {
		if at.Before(*d.lockedUntil) {
			return errs.NewValidationLockedError(d.id.String())
		}
		// lockout elapsed, fresh attempt budget
		d.lockedUntil = nil
		d.failedAttempts = 0
	}

	if d.validationCode.IsExpired(at) {
		newStatus, err := d.status.Dispute()
		if err != nil {
			return err
		}
		d.status = newStatus
		if err := d.appendTracking(newStatus, "validation code expired", at); err != nil {
			return err
		}
		return errs.NewValidationLockedError(d.id.String())
	}

	if !d.validationCode.Matches(submittedCode) {
		d.failedAttempts++
		if d.failedAttempts >= maxValidationAttempts {
			until := at.Add(ValidationLockout)
			d.lockedUntil = &until
			d.failedAttempts = 0
		}
		return errs.NewValueIsInvalidError("validation code")
	}

	current := d.CurrentLeg()
	if current == nil {
		return errs.NewInvalidStateError("delivery", "open leg", "no open leg")
	}
	if err := current.close(d.drop, at); err != nil {
		return err
	}

	newStatus, err := d.status.Deliver()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.validationCode = nil
	d.failedAttempts = 0
	d.lockedUntil = nil
	return d.appendTracking(newStatus, "", at)
}

// ExpireValidation moves a delivery whose validation code expired without a
// successful confirmation to Disputed. It reports whether a transition
// happened. Intended for the periodic sweep.
func (d *Delivery) ExpireValidation(at time.Time) (bool, error) {
	if d.status != InTransit || d.validationCode == nil {
		return false, nil
	}
	if !d.validationCode.IsExpired(at) {
		return false, nil
	}

	newStatus, err := d.status.Dispute()
	if err != nil {
		return false, err
	}

	d.status = newStatus
	if err := d.appendTracking(newStatus, "validation code expired", at); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel calls off the delivery. Valid only from Assigned or InTransit and
// only before the first relay handover has been acknowledged: once a second
// courier holds the parcel, reversing custody mid-chain is unsafe and the
// delivery can only end Delivered or Disputed.
func (d *Delivery) Cancel(reason string, at time.Time) error {
	if d.acknowledgedHandovers > 0 {
		return errs.NewInvalidStateError(
			"delivery", "no acknowledged relay handover", "handover acknowledged")
	}

	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	if current := d.CurrentLeg(); current != nil {
		if err := current.close(current.From(), at); err != nil {
			return err
		}
	}

	d.status = newStatus
	d.cancelReason = reason
	d.pendingHandover = nil
	return d.appendTracking(newStatus, reason, at)
}

// MarkDisputed escalates the delivery to Disputed with a note.
// Valid from InTransit or AtRelay.
func (d *Delivery) MarkDisputed(note string, at time.Time) error {
	newStatus, err := d.status.Dispute()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.pendingHandover = nil
	return d.appendTracking(newStatus, note, at)
}

// revertHandover returns custody to the original holder after an expired
// acknowledgement window. The current leg stays open under the original
// holder.
func (d *Delivery) revertHandover(at time.Time) error {
	newStatus, err := d.status.ResumeTransit()
	if err != nil {
		return err
	}

	d.pendingHandover = nil
	d.status = newStatus
	return d.appendTracking(newStatus, "handover not acknowledged, custody retained", at)
}

func (d *Delivery) appendTracking(status Status, note string, at time.Time) error {
	event, err := NewTrackingEvent(status, note, at)
	if err != nil {
		return err
	}
	d.tracking = append(d.tracking, event)
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.requestID = id
	return nil
}

func (d *Delivery) setHolderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.holderID = id
	return nil
}

func (d *Delivery) setPickup(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.pickup = p
	return nil
}

func (d *Delivery) setDrop(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.drop = p
	return nil
}
