package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/guard"
)

// ErrCreateRequestCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor")

// CreateRequestCommand posts a new delivery request in Draft status on
// behalf of the acting requester.
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	actor     Actor
	requestID kernel.UUID
	pickup    kernel.GeoPoint
	drop      kernel.GeoPoint
	window    kernel.TimeWindow
	pack      request.PackageSpec
	price     kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to post a delivery request.
// All value objects must already be valid; the offered price must be positive.
func NewCreateRequestCommand(
	actor Actor,
	requestID kernel.UUID,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	window kernel.TimeWindow,
	pack request.PackageSpec,
	price kernel.Money,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setRequestID(requestID),
		pickup.Validate(),
		drop.Validate(),
		window.Validate(),
		pack.Validate(),
		price.Validate(),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	cmd.pickup = pickup
	cmd.drop = drop
	cmd.window = window
	cmd.pack = pack
	cmd.price = price
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c CreateRequestCommand) Actor() Actor { return c.actor }

// RequestID returns the identifier for the new request.
func (c CreateRequestCommand) RequestID() kernel.UUID { return c.requestID }

// Pickup returns the pickup point.
func (c CreateRequestCommand) Pickup() kernel.GeoPoint { return c.pickup }

// Drop returns the drop point.
func (c CreateRequestCommand) Drop() kernel.GeoPoint { return c.drop }

// Window returns the desired delivery window.
func (c CreateRequestCommand) Window() kernel.TimeWindow { return c.window }

// Package returns the parcel constraints.
func (c CreateRequestCommand) Package() request.PackageSpec { return c.pack }

// Price returns the offered price.
func (c CreateRequestCommand) Price() kernel.Money { return c.price }

func (c *CreateRequestCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}
