package request

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrRequestIsNotConstructed is returned when a DeliveryRequest instance was
	// not created through NewDeliveryRequest or RestoreDeliveryRequest.
	ErrRequestIsNotConstructed = errors.New(
		"DeliveryRequest must be created via NewDeliveryRequest constructor")

	// ErrPriceIsNotPositive is returned when the offered price is zero or negative.
	ErrPriceIsNotPositive = errs.NewValueIsInvalidError("price")
)

// DeliveryRequest represents a posted delivery job in the marketplace.
// It is an aggregate root owning the pickup/drop points, the desired time
// window, the package constraints and the offered price.
//
// Invariants:
//   - price is strictly positive
//   - status transitions are monotonic per the Status state machine
//   - the request is mutated only by the negotiation engine (Match, Cancel)
//     and the fulfillment state machine (StartFulfillment, Complete)
//
// The version field supports optimistic locking: concurrent accept attempts
// against the same request are serialized by a compare-and-swap on it.
type DeliveryRequest struct {
	id          kernel.UUID
	requesterID kernel.UUID
	pickup      kernel.GeoPoint
	drop        kernel.GeoPoint
	window      kernel.TimeWindow
	pack        PackageSpec
	price       kernel.Money
	status      Status
	version     int64

	guard guard.ConstructorGuard
}

// NewDeliveryRequest creates a DeliveryRequest in Draft status.
// All value objects must be constructor-built and the price must be positive.
func NewDeliveryRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	window kernel.TimeWindow,
	pack PackageSpec,
	price kernel.Money,
) (*DeliveryRequest, error) {
	r := &DeliveryRequest{
		status: Draft,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setRequesterID(requesterID),
		r.setPickup(pickup),
		r.setDrop(drop),
		r.setWindow(window),
		r.setPack(pack),
		r.setPrice(price),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreDeliveryRequest reconstructs a DeliveryRequest from persistence,
// including its status and optimistic-lock version.
func RestoreDeliveryRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	window kernel.TimeWindow,
	pack PackageSpec,
	price kernel.Money,
	status Status,
	version int64,
) (*DeliveryRequest, error) {
	r, err := NewDeliveryRequest(id, requesterID, pickup, drop, window, pack, price)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("deliveryRequest version")
	}

	r.status = status
	r.version = version
	return r, nil
}

// Validate ensures the instance was properly constructed.
func (r *DeliveryRequest) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// IsEqual compares two requests by their unique identifiers.
func (r *DeliveryRequest) IsEqual(other *DeliveryRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the request's unique identifier.
func (r *DeliveryRequest) ID() kernel.UUID {
	return r.id
}

// RequesterID returns the identifier of the party that posted the request.
func (r *DeliveryRequest) RequesterID() kernel.UUID {
	return r.requesterID
}

// Pickup returns the pickup location.
func (r *DeliveryRequest) Pickup() kernel.GeoPoint {
	return r.pickup
}

// Drop returns the drop-off location.
func (r *DeliveryRequest) Drop() kernel.GeoPoint {
	return r.drop
}

// Window returns the desired delivery time window.
func (r *DeliveryRequest) Window() kernel.TimeWindow {
	return r.window
}

// Package returns the parcel constraints.
func (r *DeliveryRequest) Package() PackageSpec {
	return r.pack
}

// Price returns the offered price.
func (r *DeliveryRequest) Price() kernel.Money {
	return r.price
}

// Status returns the current lifecycle status.
func (r *DeliveryRequest) Status() Status {
	return r.status
}

// Version returns the optimistic-lock version loaded from persistence.
func (r *DeliveryRequest) Version() int64 {
	return r.version
}

// Publish makes a Draft request visible to couriers for bidding.
func (r *DeliveryRequest) Publish() error {
	newStatus, err := r.status.Publish()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// Match marks the request as matched after a winning bid is accepted.
// Only the negotiation engine calls this, inside the accept-bid transaction.
func (r *DeliveryRequest) Match() error {
	newStatus, err := r.status.Match()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// StartFulfillment marks the request as in fulfillment once the assigned
// courier starts transit.
func (r *DeliveryRequest) StartFulfillment() error {
	newStatus, err := r.status.StartFulfillment()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// Complete marks the request as completed after proof-of-delivery validation.
func (r *DeliveryRequest) Complete() error {
	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

// Cancel marks the request as cancelled. Allowed from Open and Matched;
// from InFulfillment only as a cascade of delivery cancellation, which the
// fulfillment state machine itself restricts to the pre-handover phase.
func (r *DeliveryRequest) Cancel() error {
	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = newStatus
	return nil
}

func (r *DeliveryRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryRequest) setRequesterID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.requesterID = id
	return nil
}

func (r *DeliveryRequest) setPickup(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.pickup = p
	return nil
}

func (r *DeliveryRequest) setDrop(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.drop = p
	return nil
}

func (r *DeliveryRequest) setWindow(w kernel.TimeWindow) error {
	if err := w.Validate(); err != nil {
		return err
	}
	r.window = w
	return nil
}

func (r *DeliveryRequest) setPack(p PackageSpec) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.pack = p
	return nil
}

func (r *DeliveryRequest) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.IsPositive() {
		return ErrPriceIsNotPositive
	}
	r.price = price
	return nil
}
