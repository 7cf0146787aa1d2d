package ledger

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for ledger entries.
var (
	// ErrEntryIsNotConstructed is returned when using an improperly
	// initialized Entry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

	// ErrAmountIsZero is returned when recording an entry with a zero amount.
	ErrAmountIsZero = errs.NewValueIsInvalidError("amount")

	// ErrEntryAlreadySettled is returned when attaching an entry to a billing
	// period twice.
	ErrEntryAlreadySettled = errors.New("entry is already attached to a billing period")
)

// Entry is one immutable monetary movement in the settlement ledger.
// Once created, the amount, party and kind never change; the only permitted
// mutation is attaching the entry to a billing period at settlement time.
// Corrections are recorded as new offsetting Adjustment entries.
type Entry struct {
	id              kernel.UUID
	deliveryID      kernel.UUID
	partyID         kernel.UUID
	amount          kernel.Money
	kind            Kind
	createdAt       time.Time
	billingPeriodID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewEntry records a monetary movement. The amount may be negative (for
// offsetting adjustments) but never zero.
func NewEntry(
	id kernel.UUID,
	deliveryID kernel.UUID,
	partyID kernel.UUID,
	amount kernel.Money,
	kind Kind,
	createdAt time.Time,
) (*Entry, error) {
	e := &Entry{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setDeliveryID(deliveryID),
		e.setPartyID(partyID),
		e.setAmount(amount),
		e.setKind(kind),
		e.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry reconstructs an Entry from persistence, including its billing
// period attachment when settled.
func RestoreEntry(
	id kernel.UUID,
	deliveryID kernel.UUID,
	partyID kernel.UUID,
	amount kernel.Money,
	kind Kind,
	createdAt time.Time,
	billingPeriodID *kernel.UUID,
) (*Entry, error) {
	e, err := NewEntry(id, deliveryID, partyID, amount, kind, createdAt)
	if err != nil {
		return nil, err
	}

	if billingPeriodID != nil {
		if err := billingPeriodID.Validate(); err != nil {
			return nil, err
		}
		periodID := *billingPeriodID
		e.billingPeriodID = &periodID
	}

	return e, nil
}

// Validate ensures the instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// IsEqual compares two entries by their unique identifiers.
func (e *Entry) IsEqual(other *Entry) bool {
	return other != nil && e.id.IsEqual(other.id)
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// DeliveryID returns the delivery this movement settles.
func (e *Entry) DeliveryID() kernel.UUID {
	return e.deliveryID
}

// PartyID returns the courier or provider the movement belongs to.
func (e *Entry) PartyID() kernel.UUID {
	return e.partyID
}

// Amount returns the signed monetary amount.
func (e *Entry) Amount() kernel.Money {
	return e.amount
}

// Kind returns the entry classification.
func (e *Entry) Kind() Kind {
	return e.kind
}

// CreatedAt returns when the movement was recorded.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// BillingPeriodID returns the billing period the entry is attached to, or
// nil while unsettled.
func (e *Entry) BillingPeriodID() *kernel.UUID {
	if e.billingPeriodID == nil {
		return nil
	}
	periodID := *e.billingPeriodID
	return &periodID
}

// IsSettled reports whether the entry is attached to a billing period.
func (e *Entry) IsSettled() bool {
	return e.billingPeriodID != nil
}

// IdempotencyKey identifies the logical movement this entry records.
// Re-delivery of the same completion event produces the same key, so the
// ledger can refuse a duplicate without re-deriving amounts.
func (e *Entry) IdempotencyKey() string {
	return IdempotencyKey(e.deliveryID, e.kind, e.partyID)
}

// AttachToPeriod binds the entry to a billing period at settlement time.
// This is the only permitted mutation of an entry and happens exactly once.
func (e *Entry) AttachToPeriod(periodID kernel.UUID) error {
	if err := periodID.Validate(); err != nil {
		return err
	}
	if e.billingPeriodID != nil {
		return ErrEntryAlreadySettled
	}

	e.billingPeriodID = &periodID
	return nil
}

// Reverse builds the offsetting Adjustment entry for this movement.
// The original is left untouched, preserving the audit trail.
func (e *Entry) Reverse(id kernel.UUID, at time.Time) (*Entry, error) {
	negated, err := e.amount.Negate()
	if err != nil {
		return nil, err
	}

	return NewEntry(id, e.deliveryID, e.partyID, negated, Adjustment, at)
}

// IdempotencyKey builds the logical identity of a settlement movement.
func IdempotencyKey(deliveryID kernel.UUID, kind Kind, partyID kernel.UUID) string {
	return fmt.Sprintf("%s:%s:%s", deliveryID.String(), kind.String(), partyID.String())
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.deliveryID = id
	return nil
}

func (e *Entry) setPartyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.partyID = id
	return nil
}

func (e *Entry) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if amount.Cents() == 0 {
		return ErrAmountIsZero
	}
	e.amount = amount
	return nil
}

func (e *Entry) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	e.kind = kind
	return nil
}

func (e *Entry) setCreatedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	e.createdAt = t
	return nil
}
