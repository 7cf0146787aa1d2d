package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrAcknowledgePickupCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrAcknowledgePickupCommandIsNotConstructed = errors.New(
	"AcknowledgePickupCommand must be created via NewAcknowledgePickupCommand constructor")

// AcknowledgePickupCommand completes a relay handover on the receiving side.
type AcknowledgePickupCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcknowledgePickupCommand creates a command to acknowledge a pickup.
func NewAcknowledgePickupCommand(
	actor Actor,
	deliveryID kernel.UUID,
) (AcknowledgePickupCommand, error) {
	cmd := AcknowledgePickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setDeliveryID(deliveryID),
	); err != nil {
		return AcknowledgePickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcknowledgePickupCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgePickupCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c AcknowledgePickupCommand) Actor() Actor { return c.actor }

// DeliveryID returns the delivery being picked up.
func (c AcknowledgePickupCommand) DeliveryID() kernel.UUID { return c.deliveryID }

func (c *AcknowledgePickupCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AcknowledgePickupCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}
