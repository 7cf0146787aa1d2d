package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGenerateValidationCodeCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrGenerateValidationCodeCommandIsNotConstructed = errors.New(
	"GenerateValidationCodeCommand must be created via NewGenerateValidationCodeCommand constructor")

// GenerateValidationCodeCommand issues the proof-of-delivery code.
type GenerateValidationCodeCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateValidationCodeCommand creates a command to issue a validation
// code for a delivery on its final leg.
func NewGenerateValidationCodeCommand(
	actor Actor,
	deliveryID kernel.UUID,
) (GenerateValidationCodeCommand, error) {
	cmd := GenerateValidationCodeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setDeliveryID(deliveryID),
	); err != nil {
		return GenerateValidationCodeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateValidationCodeCommand) Validate() error {
	return c.guard.Validate(ErrGenerateValidationCodeCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c GenerateValidationCodeCommand) Actor() Actor { return c.actor }

// DeliveryID returns the delivery the code is issued for.
func (c GenerateValidationCodeCommand) DeliveryID() kernel.UUID { return c.deliveryID }

func (c *GenerateValidationCodeCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *GenerateValidationCodeCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}
