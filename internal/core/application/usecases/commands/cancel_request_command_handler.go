package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"
)

// CancelRequestCommandHandler withdraws a request from the marketplace.
// Pending bids on the request are rejected, and when a delivery was already
// assigned it is cancelled in the same transaction. Once a courier picks the
// package up the request can no longer be cancelled.
type CancelRequestCommandHandler struct {
	uowFactory NegotiationUoWFactory
}

// NewCancelRequestCommandHandler creates a handler for request cancellation.
func NewCancelRequestCommandHandler(uowFactory NegotiationUoWFactory) CancelRequestCommandHandler {
	return CancelRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request cancellation command.
func (h CancelRequestCommandHandler) Handle(ctx context.Context, cmd CancelRequestCommand) error {
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

	req, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	if !req.RequesterID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "cancel request")
	}

	// Cancellation through the request is only allowed before fulfillment
	// starts. InFulfillment cancellation goes through the delivery, which
	// restricts it to the pre-handover phase.
	if req.Status() != request.Open && req.Status() != request.Matched {
		return errs.NewInvalidStateError(
			"deliveryRequest", "Open or Matched", req.Status().String())
	}

	wasMatched := req.Status() == request.Matched

	if err = req.Cancel(); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, req); err != nil {
		return err
	}

	bidRepo := uow.BidRepository()

	bids, err := bidRepo.GetAllByRequest(ctx, req.ID())
	if err != nil {
		return err
	}
	for _, aggregate := range bids {
		if !aggregate.IsPending() {
			continue
		}
		if err = aggregate.Reject(); err != nil {
			return err
		}
		if err = bidRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if wasMatched {
		if err = h.cancelAssignedDelivery(ctx, uow, cmd); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h CancelRequestCommandHandler) cancelAssignedDelivery(
	ctx context.Context,
	uow NegotiationUoW,
	cmd CancelRequestCommand,
) error {
	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.GetByRequest(ctx, cmd.RequestID())
	if err != nil {
		// A matched request without a delivery row means acceptance and
		// cancellation raced. The missing row is not an error here.
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if err = aggregate.Cancel(cmd.Reason(), time.Now().UTC()); err != nil {
		return err
	}

	return deliveryRepo.Update(ctx, aggregate)
}
