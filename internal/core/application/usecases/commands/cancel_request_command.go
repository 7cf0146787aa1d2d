package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrCancelRequestCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrCancelRequestCommandIsNotConstructed = errors.New(
	"CancelRequestCommand must be created via NewCancelRequestCommand constructor")

// CancelRequestCommand withdraws a request before fulfillment starts.
type CancelRequestCommand struct { //nolint:recvcheck //using for validation
	actor     Actor
	requestID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewCancelRequestCommand creates a command to cancel a request.
func NewCancelRequestCommand(
	actor Actor,
	requestID kernel.UUID,
	reason string,
) (CancelRequestCommand, error) {
	cmd := CancelRequestCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setRequestID(requestID),
	); err != nil {
		return CancelRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c CancelRequestCommand) Actor() Actor { return c.actor }

// RequestID returns the request to cancel.
func (c CancelRequestCommand) RequestID() kernel.UUID { return c.requestID }

// Reason returns the free-form cancellation reason. May be empty.
func (c CancelRequestCommand) Reason() string { return c.reason }

func (c *CancelRequestCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CancelRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}
