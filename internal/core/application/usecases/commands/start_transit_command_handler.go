package commands

import (
	"context"
	"time"
)

// StartTransitCommandHandler opens the first custody leg of a delivery.
// The owning request moves to InFulfillment in the same transaction, which
// closes the window for request cancellation.
type StartTransitCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewStartTransitCommandHandler creates a handler for transit start.
func NewStartTransitCommandHandler(uowFactory FulfillmentUoWFactory) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transit start command. Only the assigned courier may
// start transit; the aggregate enforces the holder check.
func (h StartTransitCommandHandler) Handle(ctx context.Context, cmd StartTransitCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.StartTransit(cmd.Actor().ID(), time.Now().UTC()); err != nil {
		return err
	}
	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	req, err := uow.RequestRepository().Get(ctx, aggregate.RequestID())
	if err != nil {
		return err
	}
	if err = req.StartFulfillment(); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, req); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
