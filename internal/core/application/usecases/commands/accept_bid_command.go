package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrAcceptBidCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor")

// AcceptBidCommand selects the winning bid on a request.
type AcceptBidCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	bidID      kernel.UUID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptBidCommand creates a command to accept a bid. The delivery that
// results from acceptance is created under deliveryID.
func NewAcceptBidCommand(
	actor Actor,
	bidID kernel.UUID,
	deliveryID kernel.UUID,
) (AcceptBidCommand, error) {
	cmd := AcceptBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setBidID(bidID),
		cmd.setDeliveryID(deliveryID),
	); err != nil {
		return AcceptBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c AcceptBidCommand) Actor() Actor { return c.actor }

// BidID returns the bid to accept.
func (c AcceptBidCommand) BidID() kernel.UUID { return c.bidID }

// DeliveryID returns the identifier for the delivery created on acceptance.
func (c AcceptBidCommand) DeliveryID() kernel.UUID { return c.deliveryID }

func (c *AcceptBidCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AcceptBidCommand) setBidID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bidID = id
	return nil
}

func (c *AcceptBidCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}
