package commands

import (
	"context"
	"time"

	"dispatch/internal/pkg/errs"
)

// CancelDeliveryCommandHandler aborts a delivery and cascades the
// cancellation to the owning request. The aggregate refuses cancellation
// once a relay handover has been acknowledged.
type CancelDeliveryCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewCancelDeliveryCommandHandler creates a handler for delivery
// cancellation.
func NewCancelDeliveryCommandHandler(uowFactory FulfillmentUoWFactory) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery cancellation command. Only the owner of the
// delivery's request may cancel.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	req, err := uow.RequestRepository().Get(ctx, aggregate.RequestID())
	if err != nil {
		return err
	}
	if !req.RequesterID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "cancel delivery")
	}

	if err = aggregate.Cancel(cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}
	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = req.Cancel(); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, req); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
