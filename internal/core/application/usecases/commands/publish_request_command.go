package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrPublishRequestCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrPublishRequestCommandIsNotConstructed = errors.New(
	"PublishRequestCommand must be created via NewPublishRequestCommand constructor")

// PublishRequestCommand opens a drafted request for bidding.
type PublishRequestCommand struct { //nolint:recvcheck //using for validation
	actor     Actor
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPublishRequestCommand creates a command to publish a drafted request.
func NewPublishRequestCommand(actor Actor, requestID kernel.UUID) (PublishRequestCommand, error) {
	cmd := PublishRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setRequestID(requestID),
	); err != nil {
		return PublishRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishRequestCommand) Validate() error {
	return c.guard.Validate(ErrPublishRequestCommandIsNotConstructed)
}

// Actor returns the acting party.
func (c PublishRequestCommand) Actor() Actor { return c.actor }

// RequestID returns the request to publish.
func (c PublishRequestCommand) RequestID() kernel.UUID { return c.requestID }

func (c *PublishRequestCommand) setActor(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *PublishRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}
