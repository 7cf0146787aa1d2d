package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// PublishRequestCommandHandler opens a drafted request for bidding.
// Only the request owner may publish.
type PublishRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewPublishRequestCommandHandler creates a handler for request publication.
func NewPublishRequestCommandHandler(uowFactory RequestUoWFactory) PublishRequestCommandHandler {
	return PublishRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the publication command.
func (h PublishRequestCommandHandler) Handle(ctx context.Context, cmd PublishRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RequestRepository()

	aggregate, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if !aggregate.RequesterID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "publish request")
	}

	if err = aggregate.Publish(); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
