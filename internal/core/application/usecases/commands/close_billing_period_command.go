package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrCloseBillingPeriodCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrCloseBillingPeriodCommandIsNotConstructed = errors.New(
	"CloseBillingPeriodCommand must be created via NewCloseBillingPeriodCommand constructor")

// CloseBillingPeriodCommand settles a party's accumulated ledger activity
// into a closed billing period.
type CloseBillingPeriodCommand struct { //nolint:recvcheck //using for validation
	actor    Actor
	periodID kernel.UUID
	partyID  kernel.UUID
	start    time.Time
	end      time.Time

	guard guard.ConstructorGuard
}

// NewCloseBillingPeriodCommand creates a command to close a billing period
// covering [start, end) for the party.
func NewCloseBillingPeriodCommand(
	actor Actor,
	periodID kernel.UUID,
	partyID kernel.UUID,
	start time.Time,
	end time.Time,
) (CloseBillingPeriodCommand, error) {
	cmd := CloseBillingPeriodCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setPeriodID(periodID),
		cmd.setPartyID(partyID),
		cmd.setBounds(start, end),
	); err != nil {
		return CloseBillingPeriodCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CloseBillingPeriodCommand) Validate() error {
	return c.guard.Validate(ErrCloseBillingPeriodCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c CloseBillingPeriodCommand) Actor() Actor { return c.actor }

// PeriodID returns the identifier for the new period.
func (c CloseBillingPeriodCommand) PeriodID() kernel.UUID { return c.periodID }

// PartyID returns the party whose entries are settled.
func (c CloseBillingPeriodCommand) PartyID() kernel.UUID { return c.partyID }

// Start returns the inclusive start of the period.
func (c CloseBillingPeriodCommand) Start() time.Time { return c.start }

// End returns the exclusive end of the period.
func (c CloseBillingPeriodCommand) End() time.Time { return c.end }

func (c *CloseBillingPeriodCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CloseBillingPeriodCommand) setPeriodID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.periodID = id
	return nil
}

func (c *CloseBillingPeriodCommand) setPartyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.partyID = id
	return nil
}

func (c *CloseBillingPeriodCommand) setBounds(start, end time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("start")
	}
	if end.IsZero() {
		return errs.NewValueIsRequiredError("end")
	}
	if !start.Before(end) {
		return errs.NewValueIsInvalidError("period bounds")
	}

	c.start = start
	c.end = end
	return nil
}
