package commands

import (
	"context"

	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"
)

// CreateRequestCommandHandler handles the business logic for posting a
// delivery request. Requests start in Draft status and become visible to
// couriers only after publication.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewCreateRequestCommandHandler creates a handler for request creation.
func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request creation command.
// Only an actor in the requester role may post a request; the actor becomes
// the request's owner.
func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsRequester() {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "create request")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := request.NewDeliveryRequest(
		cmd.RequestID(), cmd.Actor().ID(),
		cmd.Pickup(), cmd.Drop(), cmd.Window(), cmd.Package(), cmd.Price())
	if err != nil {
		return err
	}

	if err = uow.RequestRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
