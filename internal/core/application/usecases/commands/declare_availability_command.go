package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDeclareAvailabilityCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrDeclareAvailabilityCommandIsNotConstructed = errors.New(
	"DeclareAvailabilityCommand must be created via NewDeclareAvailabilityCommand constructor")

// DeclareAvailabilityCommand registers a courier's planned route segment.
type DeclareAvailabilityCommand struct { //nolint:recvcheck //using for validation
	actor          Actor
	availabilityID kernel.UUID
	from           kernel.GeoPoint
	to             kernel.GeoPoint
	window         kernel.TimeWindow
	capacityGrams  int
	refrigerated   bool

	guard guard.ConstructorGuard
}

// NewDeclareAvailabilityCommand creates a command to declare availability.
func NewDeclareAvailabilityCommand(
	actor Actor,
	availabilityID kernel.UUID,
	from kernel.GeoPoint,
	to kernel.GeoPoint,
	window kernel.TimeWindow,
	capacityGrams int,
	refrigerated bool,
) (DeclareAvailabilityCommand, error) {
	cmd := DeclareAvailabilityCommand{
		refrigerated: refrigerated,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setAvailabilityID(availabilityID),
		from.Validate(),
		to.Validate(),
		window.Validate(),
		cmd.setCapacityGrams(capacityGrams),
	); err != nil {
		return DeclareAvailabilityCommand{}, err
	}

	cmd.from = from
	cmd.to = to
	cmd.window = window
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclareAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrDeclareAvailabilityCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c DeclareAvailabilityCommand) Actor() Actor { return c.actor }

// AvailabilityID returns the identifier for the declaration.
func (c DeclareAvailabilityCommand) AvailabilityID() kernel.UUID { return c.availabilityID }

// From returns the segment origin.
func (c DeclareAvailabilityCommand) From() kernel.GeoPoint { return c.from }

// To returns the segment destination.
func (c DeclareAvailabilityCommand) To() kernel.GeoPoint { return c.to }

// Window returns the interval the courier runs the segment in.
func (c DeclareAvailabilityCommand) Window() kernel.TimeWindow { return c.window }

// CapacityGrams returns the maximum parcel weight carried on this run.
func (c DeclareAvailabilityCommand) CapacityGrams() int { return c.capacityGrams }

// Refrigerated reports whether refrigerated transport is offered.
func (c DeclareAvailabilityCommand) Refrigerated() bool { return c.refrigerated }

func (c *DeclareAvailabilityCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *DeclareAvailabilityCommand) setAvailabilityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.availabilityID = id
	return nil
}

func (c *DeclareAvailabilityCommand) setCapacityGrams(capacityGrams int) error {
	if capacityGrams <= 0 {
		return errs.NewValueIsInvalidError("capacityGrams")
	}
	c.capacityGrams = capacityGrams
	return nil
}
