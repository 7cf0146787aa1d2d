package bid

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid instance was not created
	// through NewBid or RestoreBid.
	ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid constructor")

	// ErrProposedPriceIsNotPositive is returned when the proposed price is
	// zero or negative.
	ErrProposedPriceIsNotPositive = errs.NewValueIsInvalidError("proposed price")
)

// Bid represents a courier's price proposal on an open delivery request.
// The bid is owned by the courier who submitted it; cross-bid invariants
// (one pending bid per courier per request, one accepted bid per request)
// are arbitrated by the negotiation engine, not by the bid itself.
//
// The version field supports optimistic locking: a decision racing another
// decision on the same bid loses with a Conflict error instead of
// overwriting it.
type Bid struct {
	id        kernel.UUID
	requestID kernel.UUID
	courierID kernel.UUID
	price     kernel.Money
	status    Status
	createdAt time.Time
	version   int64

	guard guard.ConstructorGuard
}

// NewBid creates a Bid in Pending status.
func NewBid(
	id kernel.UUID,
	requestID kernel.UUID,
	courierID kernel.UUID,
	price kernel.Money,
	createdAt time.Time,
) (*Bid, error) {
	b := &Bid{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setRequestID(requestID),
		b.setCourierID(courierID),
		b.setPrice(price),
		b.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBid reconstructs a Bid from persistence, including its status and
// optimistic-lock version.
func RestoreBid(
	id kernel.UUID,
	requestID kernel.UUID,
	courierID kernel.UUID,
	price kernel.Money,
	status Status,
	createdAt time.Time,
	version int64,
) (*Bid, error) {
	b, err := NewBid(id, requestID, courierID, price, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("bid version")
	}

	b.status = status
	b.version = version
	return b, nil
}

// Validate ensures the instance was properly constructed.
func (b *Bid) Validate() error {
	if b == nil {
		return ErrBidIsNotConstructed
	}
	return b.guard.Validate(ErrBidIsNotConstructed)
}

// IsEqual compares two bids by their unique identifiers.
func (b *Bid) IsEqual(other *Bid) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID {
	return b.id
}

// RequestID returns the identifier of the delivery request being bid on.
func (b *Bid) RequestID() kernel.UUID {
	return b.requestID
}

// CourierID returns the identifier of the courier who submitted the bid.
func (b *Bid) CourierID() kernel.UUID {
	return b.courierID
}

// Price returns the proposed price.
func (b *Bid) Price() kernel.Money {
	return b.price
}

// Status returns the current lifecycle status.
func (b *Bid) Status() Status {
	return b.status
}

// CreatedAt returns the submission timestamp.
func (b *Bid) CreatedAt() time.Time {
	return b.createdAt
}

// Version returns the optimistic-lock version loaded from persistence.
func (b *Bid) Version() int64 {
	return b.version
}

// IsPending reports whether the bid is still awaiting a decision.
func (b *Bid) IsPending() bool {
	return b.status == Pending
}

// Accept marks the bid as the request's winner. Valid only while Pending.
func (b *Bid) Accept() error {
	newStatus, err := b.status.Accept()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Reject declines the bid. Valid only while Pending.
func (b *Bid) Reject() error {
	newStatus, err := b.status.Reject()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Withdraw retracts the bid on behalf of its courier. Valid only while Pending.
func (b *Bid) Withdraw() error {
	newStatus, err := b.status.Withdraw()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

func (b *Bid) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bid) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.requestID = id
	return nil
}

func (b *Bid) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.courierID = id
	return nil
}

func (b *Bid) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.IsPositive() {
		return ErrProposedPriceIsNotPositive
	}
	b.price = price
	return nil
}

func (b *Bid) setCreatedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	b.createdAt = t
	return nil
}
