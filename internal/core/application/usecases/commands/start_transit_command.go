package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrStartTransitCommandIsNotConstructed is returned when the command was not
// created via its constructor.
var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor")

// StartTransitCommand records that the assigned courier picked the package up.
type StartTransitCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartTransitCommand creates a command to start transit.
func NewStartTransitCommand(actor Actor, deliveryID kernel.UUID) (StartTransitCommand, error) {
	cmd := StartTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setDeliveryID(deliveryID),
	); err != nil {
		return StartTransitCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c StartTransitCommand) Actor() Actor { return c.actor }

// DeliveryID returns the delivery to start.
func (c StartTransitCommand) DeliveryID() kernel.UUID { return c.deliveryID }

func (c *StartTransitCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *StartTransitCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}
