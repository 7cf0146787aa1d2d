package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrHandoverAtRelayCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrHandoverAtRelayCommandIsNotConstructed = errors.New(
	"HandoverAtRelayCommand must be created via NewHandoverAtRelayCommand constructor")

// HandoverAtRelayCommand initiates a custody transfer at a relay point.
type HandoverAtRelayCommand struct { //nolint:recvcheck //using for validation
	actor         Actor
	deliveryID    kernel.UUID
	nextCourierID kernel.UUID
	relayPoint    kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewHandoverAtRelayCommand creates a command to hand a package over.
func NewHandoverAtRelayCommand(
	actor Actor,
	deliveryID kernel.UUID,
	nextCourierID kernel.UUID,
	relayPoint kernel.GeoPoint,
) (HandoverAtRelayCommand, error) {
	cmd := HandoverAtRelayCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setDeliveryID(deliveryID),
		cmd.setNextCourierID(nextCourierID),
		relayPoint.Validate(),
	); err != nil {
		return HandoverAtRelayCommand{}, err
	}

	cmd.relayPoint = relayPoint
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c HandoverAtRelayCommand) Validate() error {
	return c.guard.Validate(ErrHandoverAtRelayCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c HandoverAtRelayCommand) Actor() Actor { return c.actor }

// DeliveryID returns the delivery being handed over.
func (c HandoverAtRelayCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// NextCourierID returns the courier expected to take custody.
func (c HandoverAtRelayCommand) NextCourierID() kernel.UUID { return c.nextCourierID }

// RelayPoint returns where the handover takes place.
func (c HandoverAtRelayCommand) RelayPoint() kernel.GeoPoint { return c.relayPoint }

func (c *HandoverAtRelayCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *HandoverAtRelayCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *HandoverAtRelayCommand) setNextCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.nextCourierID = id
	return nil
}
