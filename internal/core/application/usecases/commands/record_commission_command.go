package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrRecordCommissionCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrRecordCommissionCommandIsNotConstructed = errors.New(
	"RecordCommissionCommand must be created via NewRecordCommissionCommand constructor")

// RecordCommissionCommand records the platform's share of a delivery.
type RecordCommissionCommand struct { //nolint:recvcheck //using for validation
	actor      Actor
	entryID    kernel.UUID
	deliveryID kernel.UUID
	partyID    kernel.UUID
	amount     kernel.Money

	guard guard.ConstructorGuard
}

// NewRecordCommissionCommand creates a command to record a commission entry.
func NewRecordCommissionCommand(
	actor Actor,
	entryID kernel.UUID,
	deliveryID kernel.UUID,
	partyID kernel.UUID,
	amount kernel.Money,
) (RecordCommissionCommand, error) {
	cmd := RecordCommissionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setEntryID(entryID),
		cmd.setDeliveryID(deliveryID),
		cmd.setPartyID(partyID),
		amount.Validate(),
	); err != nil {
		return RecordCommissionCommand{}, err
	}

	cmd.amount = amount
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordCommissionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCommissionCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c RecordCommissionCommand) Actor() Actor { return c.actor }

// EntryID returns the identifier for the new entry.
func (c RecordCommissionCommand) EntryID() kernel.UUID { return c.entryID }

// DeliveryID returns the delivery the commission settles.
func (c RecordCommissionCommand) DeliveryID() kernel.UUID { return c.deliveryID }

// PartyID returns the platform account being credited.
func (c RecordCommissionCommand) PartyID() kernel.UUID { return c.partyID }

// Amount returns the commission amount.
func (c RecordCommissionCommand) Amount() kernel.Money { return c.amount }

func (c *RecordCommissionCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RecordCommissionCommand) setEntryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.entryID = id
	return nil
}

func (c *RecordCommissionCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *RecordCommissionCommand) setPartyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.partyID = id
	return nil
}
