package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// HandoverAtRelayCommandHandler initiates a relay handover. The current
// holder stays accountable until the next courier acknowledges pickup.
type HandoverAtRelayCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	notifier   ports.Notifier
	ackTimeout time.Duration
}

// NewHandoverAtRelayCommandHandler creates a handler for relay handovers.
// A non-positive ackTimeout falls back to the aggregate default.
func NewHandoverAtRelayCommandHandler(
	uowFactory FulfillmentUoWFactory,
	notifier ports.Notifier,
	ackTimeout time.Duration,
) HandoverAtRelayCommandHandler {
	if ackTimeout <= 0 {
		ackTimeout = delivery.DefaultHandoverTimeout
	}
	return HandoverAtRelayCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		ackTimeout: ackTimeout,
	}
}

// Handle processes the handover command. The next courier is notified after
// the transaction commits.
func (h HandoverAtRelayCommandHandler) Handle(ctx context.Context, cmd HandoverAtRelayCommand) error {
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

	err = aggregate.HandoverAtRelay(
		cmd.Actor().ID(), cmd.NextCourierID(), cmd.RelayPoint(),
		time.Now().UTC(), h.ackTimeout)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyHandover(ctx, aggregate.ID(), cmd.NextCourierID())
	return nil
}
