package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// SweepExpiredCommandHandler walks all unresolved deliveries and applies
// deadline expiry: unacknowledged handovers revert to the previous holder
// and deliveries with an expired validation code move to Disputed. All
// updates happen in one transaction; dispute notifications fire after
// commit.
type SweepExpiredCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.Notifier
}

// NewSweepExpiredCommandHandler creates a handler for the expiry sweep.
func NewSweepExpiredCommandHandler(
	uowFactory FulfillmentUoWFactory,
	notifier ports.Notifier,
) SweepExpiredCommandHandler {
	return SweepExpiredCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the sweep command.
func (h SweepExpiredCommandHandler) Handle(ctx context.Context, cmd SweepExpiredCommand) error {
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

	deliveries, err := repo.GetAllUnresolved(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	disputed := make([]kernel.UUID, 0)

	for _, aggregate := range deliveries {
		reverted, expireErr := aggregate.ExpireStaleHandover(now)
		if expireErr != nil {
			return expireErr
		}

		lapsed, expireErr := aggregate.ExpireValidation(now)
		if expireErr != nil {
			return expireErr
		}
		if lapsed {
			disputed = append(disputed, aggregate.ID())
		}

		if !reverted && !lapsed {
			continue
		}
		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, deliveryID := range disputed {
		h.notifier.NotifyDisputed(ctx, deliveryID)
	}
	return nil
}
