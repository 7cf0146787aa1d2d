package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrIssueInvoiceCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrIssueInvoiceCommandIsNotConstructed = errors.New(
	"IssueInvoiceCommand must be created via NewIssueInvoiceCommand constructor")

// IssueInvoiceCommand turns a closed billing period into an invoiced one.
type IssueInvoiceCommand struct { //nolint:recvcheck //using for validation
	actor    Actor
	periodID kernel.UUID
	sequence int

	guard guard.ConstructorGuard
}

// NewIssueInvoiceCommand creates a command to issue an invoice for a closed
// period. The sequence number feeds the invoice reference.
func NewIssueInvoiceCommand(
	actor Actor,
	periodID kernel.UUID,
	sequence int,
) (IssueInvoiceCommand, error) {
	cmd := IssueInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setPeriodID(periodID),
		cmd.setSequence(sequence),
	); err != nil {
		return IssueInvoiceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrIssueInvoiceCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c IssueInvoiceCommand) Actor() Actor { return c.actor }

// PeriodID returns the closed period to invoice.
func (c IssueInvoiceCommand) PeriodID() kernel.UUID { return c.periodID }

// Sequence returns the invoice sequence number within the month.
func (c IssueInvoiceCommand) Sequence() int { return c.sequence }

func (c *IssueInvoiceCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *IssueInvoiceCommand) setPeriodID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.periodID = id
	return nil
}

func (c *IssueInvoiceCommand) setSequence(sequence int) error {
	if sequence <= 0 {
		return errs.NewValueIsInvalidError("sequence")
	}
	c.sequence = sequence
	return nil
}
