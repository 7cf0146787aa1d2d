package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrRejectBidCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrRejectBidCommandIsNotConstructed = errors.New(
	"RejectBidCommand must be created via NewRejectBidCommand constructor")

// RejectBidCommand declines a single pending bid without closing the request.
type RejectBidCommand struct { //nolint:recvcheck //using for validation
	actor Actor
	bidID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectBidCommand creates a command to reject a bid.
func NewRejectBidCommand(actor Actor, bidID kernel.UUID) (RejectBidCommand, error) {
	cmd := RejectBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setBidID(bidID),
	); err != nil {
		return RejectBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectBidCommand) Validate() error {
	return c.guard.Validate(ErrRejectBidCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c RejectBidCommand) Actor() Actor { return c.actor }

// BidID returns the bid to reject.
func (c RejectBidCommand) BidID() kernel.UUID { return c.bidID }

func (c *RejectBidCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RejectBidCommand) setBidID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bidID = id
	return nil
}
