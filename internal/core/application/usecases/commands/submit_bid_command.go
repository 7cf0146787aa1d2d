package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrSubmitBidCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrSubmitBidCommandIsNotConstructed = errors.New(
	"SubmitBidCommand must be created via NewSubmitBidCommand constructor")

// SubmitBidCommand places a courier's price proposal on an open request.
type SubmitBidCommand struct { //nolint:recvcheck //using for validation
	actor     Actor
	bidID     kernel.UUID
	requestID kernel.UUID
	price     kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitBidCommand creates a command to submit a bid.
func NewSubmitBidCommand(
	actor Actor,
	bidID kernel.UUID,
	requestID kernel.UUID,
	price kernel.Money,
) (SubmitBidCommand, error) {
	cmd := SubmitBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setBidID(bidID),
		cmd.setRequestID(requestID),
		price.Validate(),
	); err != nil {
		return SubmitBidCommand{}, err
	}

	cmd.price = price
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c SubmitBidCommand) Actor() Actor { return c.actor }

// BidID returns the identifier for the new bid.
func (c SubmitBidCommand) BidID() kernel.UUID { return c.bidID }

// RequestID returns the request being bid on.
func (c SubmitBidCommand) RequestID() kernel.UUID { return c.requestID }

// Price returns the proposed price.
func (c SubmitBidCommand) Price() kernel.Money { return c.price }

func (c *SubmitBidCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *SubmitBidCommand) setBidID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bidID = id
	return nil
}

func (c *SubmitBidCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}
