package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrValidateDeliveryCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrValidateDeliveryCommandIsNotConstructed = errors.New(
	"ValidateDeliveryCommand must be created via NewValidateDeliveryCommand constructor")

// ValidateDeliveryCommand submits the recipient's proof-of-delivery code.
type ValidateDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	deliveryID kernel.UUID
	code       string

	guard guard.ConstructorGuard
}

// NewValidateDeliveryCommand creates a command to confirm a delivery.
func NewValidateDeliveryCommand(
	actor Actor,
	deliveryID kernel.UUID,
	code string,
) (ValidateDeliveryCommand, error) {
	cmd := ValidateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setDeliveryID(deliveryID),
		cmd.setCode(code),
	); err != nil {
		return ValidateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrValidateDeliveryCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c ValidateDeliveryCommand) Actor() Actor { return c.actor }

// DeliveryID returns the delivery being confirmed.
func (c ValidateDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// Code returns the submitted validation code.
func (c ValidateDeliveryCommand) Code() string { return c.code }

func (c *ValidateDeliveryCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ValidateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *ValidateDeliveryCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}
