package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrReverseEntryCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrReverseEntryCommandIsNotConstructed = errors.New(
	"ReverseEntryCommand must be created via NewReverseEntryCommand constructor")

// ReverseEntryCommand corrects a ledger entry with an offsetting adjustment.
type ReverseEntryCommand struct { //nolint:recvcheck //using for validation
	actor        Actor
	entryID      kernel.UUID
	adjustmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReverseEntryCommand creates a command to reverse a ledger entry. The
// offsetting adjustment is recorded under adjustmentID.
func NewReverseEntryCommand(
	actor Actor,
	entryID kernel.UUID,
	adjustmentID kernel.UUID,
) (ReverseEntryCommand, error) {
	cmd := ReverseEntryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setEntryID(entryID),
		cmd.setAdjustmentID(adjustmentID),
	); err != nil {
		return ReverseEntryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReverseEntryCommand) Validate() error {
	return c.guard.Validate(ErrReverseEntryCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c ReverseEntryCommand) Actor() Actor { return c.actor }

// EntryID returns the entry being reversed.
func (c ReverseEntryCommand) EntryID() kernel.UUID { return c.entryID }

// AdjustmentID returns the identifier for the offsetting entry.
func (c ReverseEntryCommand) AdjustmentID() kernel.UUID { return c.adjustmentID }

func (c *ReverseEntryCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ReverseEntryCommand) setEntryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.entryID = id
	return nil
}

func (c *ReverseEntryCommand) setAdjustmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.adjustmentID = id
	return nil
}
