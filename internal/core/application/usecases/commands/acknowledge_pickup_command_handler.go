package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
)

// AcknowledgePickupCommandHandler completes a relay handover. A late
// acknowledgement reverts custody to the previous holder; the reverted state
// is persisted and the rejection is reported to the caller.
type AcknowledgePickupCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewAcknowledgePickupCommandHandler creates a handler for pickup
// acknowledgements.
func NewAcknowledgePickupCommandHandler(
	uowFactory FulfillmentUoWFactory,
) AcknowledgePickupCommandHandler {
	return AcknowledgePickupCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pickup acknowledgement command.
func (h AcknowledgePickupCommandHandler) Handle(
	ctx context.Context,
	cmd AcknowledgePickupCommand,
) error {
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

	repo := uow.DeliveryRepository()

	aggregate, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	ackErr := aggregate.AcknowledgePickup(cmd.Actor().ID(), time.Now().UTC())
	if ackErr != nil && !errors.Is(ackErr, errs.ErrHandoverRejected) {
		return ackErr
	}

	// On rejection the aggregate reverted custody to the previous holder.
	// That reversion is real state and must survive the failed pickup.
	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return ackErr
}
