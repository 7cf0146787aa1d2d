package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrRecordEarningCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrRecordEarningCommandIsNotConstructed = errors.New(
	"RecordEarningCommand must be created via NewRecordEarningCommand constructor")

// RecordEarningCommand credits a courier for a completed delivery.
type RecordEarningCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	entryID    kernel.UUID
	deliveryID kernel.UUID
	partyID    kernel.UUID
	amount     kernel.Money

	guard guard.ConstructorGuard
}

// NewRecordEarningCommand creates a command to record an earning entry.
func NewRecordEarningCommand(
	actor Actor,
	entryID kernel.UUID,
	deliveryID kernel.UUID,
	partyID kernel.UUID,
	amount kernel.Money,
) (RecordEarningCommand, error) {
	cmd := RecordEarningCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setEntryID(entryID),
		cmd.setDeliveryID(deliveryID),
		cmd.setPartyID(partyID),
		amount.Validate(),
	); err != nil {
		return RecordEarningCommand{}, err
	}

	cmd.amount = amount
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordEarningCommand) Validate() error {
	return c.guard.Validate(ErrRecordEarningCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c RecordEarningCommand) Actor() Actor { return c.actor }

// EntryID returns the identifier for the new entry.
func (c RecordEarningCommand) EntryID() kernel.UUID { return c.entryID }

// DeliveryID returns the delivery the earning settles.
func (c RecordEarningCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// PartyID returns the courier being credited.
func (c RecordEarningCommand) PartyID() kernel.UUID { return c.partyID }

// Amount returns the credited amount.
func (c RecordEarningCommand) Amount() kernel.Money { return c.amount }

func (c *RecordEarningCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RecordEarningCommand) setEntryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.entryID = id
	return nil
}

func (c *RecordEarningCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *RecordEarningCommand) setPartyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.partyID = id
	return nil
}
