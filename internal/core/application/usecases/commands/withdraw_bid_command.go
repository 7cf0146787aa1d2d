package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrWithdrawBidCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrWithdrawBidCommandIsNotConstructed = errors.New(
	"WithdrawBidCommand must be created via NewWithdrawBidCommand constructor")

// WithdrawBidCommand retracts a courier's own pending bid.
type WithdrawBidCommand struct { //nolint:recvcheck //using for validation
	actor Actor
	bidID kernel.UUID

	guard guard.ConstructorGuard
}

// NewWithdrawBidCommand creates a command to withdraw a bid.
func NewWithdrawBidCommand(actor Actor, bidID kernel.UUID) (WithdrawBidCommand, error) {
	cmd := WithdrawBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setBidID(bidID),
	); err != nil {
		return WithdrawBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawBidCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawBidCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c WithdrawBidCommand) Actor() Actor { return c.actor }

// BidID returns the bid to withdraw.
func (c WithdrawBidCommand) BidID() kernel.UUID { return c.bidID }

func (c *WithdrawBidCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *WithdrawBidCommand) setBidID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.bidID = id
	return nil
}
