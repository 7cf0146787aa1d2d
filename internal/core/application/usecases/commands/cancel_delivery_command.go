package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrCancelDeliveryCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor")

// CancelDeliveryCommand aborts a delivery before any relay handover
// completed.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	deliveryID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelDeliveryCommand creates a command to cancel a delivery.
func NewCancelDeliveryCommand(
	actor Actor,
	deliveryID kernel.UUID,
	reason string,
) (CancelDeliveryCommand, error) {
	cmd := CancelDeliveryCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setDeliveryID(deliveryID),
	); err != nil {
		return CancelDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c CancelDeliveryCommand) Actor() Actor { return c.actor }

// DeliveryID returns the delivery to cancel.
func (c CancelDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// Reason returns the free-form cancellation reason. May be empty.
func (c CancelDeliveryCommand) Reason() string { return c.reason }

func (c *CancelDeliveryCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CancelDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}
