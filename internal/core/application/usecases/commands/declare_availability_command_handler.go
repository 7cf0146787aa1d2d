package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

// DeclareAvailabilityCommandHandler registers a courier's route segment so
// the matcher can propose the courier for overlapping requests.
type DeclareAvailabilityCommandHandler struct {
	uowFactory AvailabilityUoWFactory
}

// NewDeclareAvailabilityCommandHandler creates a handler for availability
// declarations.
func NewDeclareAvailabilityCommandHandler(
	uowFactory AvailabilityUoWFactory,
) DeclareAvailabilityCommandHandler {
	return DeclareAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability declaration command. The declaration is
// always owned by the acting courier.
func (h DeclareAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd DeclareAvailabilityCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsCourier() {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "declare availability")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := courier.NewAvailability(
		cmd.AvailabilityID(), cmd.Actor().ID(),
		cmd.From(), cmd.To(), cmd.Window(),
		cmd.CapacityGrams(), cmd.Refrigerated())
	if err != nil {
		return err
	}

	if err = uow.AvailabilityRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
