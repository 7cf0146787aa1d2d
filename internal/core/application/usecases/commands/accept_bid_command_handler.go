package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AcceptBidCommandHandler settles the negotiation on a request.
// Acceptance is atomic: the winning bid is accepted, every other pending bid
// on the request is rejected, the request moves to Matched and the delivery
// is created, all in one transaction. A lost race on the request version
// surfaces as a Conflict and leaves nothing half-applied.
type AcceptBidCommandHandler struct {
	uowFactory NegotiationUoWFactory
	notifier   ports.Notifier
}

// NewAcceptBidCommandHandler creates a handler for bid acceptance.
func NewAcceptBidCommandHandler(
	uowFactory NegotiationUoWFactory,
	notifier ports.Notifier,
) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the bid acceptance command. Only the request owner may
// accept. The winner notification fires after the transaction commits.
func (h AcceptBidCommandHandler) Handle(ctx context.Context, cmd AcceptBidCommand) error {
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

	bidRepo := uow.BidRepository()

	winner, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	req, err := uow.RequestRepository().Get(ctx, winner.RequestID())
	if err != nil {
		return err
	}
	if !req.RequesterID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "accept bid")
	}

	if err = winner.Accept(); err != nil {
		return err
	}
	if err = bidRepo.Update(ctx, winner); err != nil {
		return err
	}

	siblings, err := bidRepo.GetAllByRequest(ctx, req.ID())
	if err != nil {
		return err
	}
	for _, sibling := range siblings {
		if !sibling.IsPending() {
			continue
		}
		if err = sibling.Reject(); err != nil {
			return err
		}
		if err = bidRepo.Update(ctx, sibling); err != nil {
			return err
		}
	}

	if err = req.Match(); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, req); err != nil {
		return err
	}

	newDelivery, err := delivery.NewDelivery(
		cmd.DeliveryID(), req.ID(), winner.CourierID(),
		req.Pickup(), req.Drop(), time.Now().UTC())
	if err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyBidAccepted(ctx, req.ID(), winner.ID(), winner.CourierID())
	return nil
}
