package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// RejectBidCommandHandler declines a single pending bid. The request stays
// open so other couriers can keep bidding.
type RejectBidCommandHandler struct {
	uowFactory NegotiationUoWFactory
}

// NewRejectBidCommandHandler creates a handler for bid rejection.
func NewRejectBidCommandHandler(uowFactory NegotiationUoWFactory) RejectBidCommandHandler {
	return RejectBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bid rejection command. Only the owner of the request
// the bid targets may reject it.
func (h RejectBidCommandHandler) Handle(ctx context.Context, cmd RejectBidCommand) error {
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

	aggregate, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	req, err := uow.RequestRepository().Get(ctx, aggregate.RequestID())
	if err != nil {
		return err
	}
	if !req.RequesterID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "reject bid")
	}

	if err = aggregate.Reject(); err != nil {
		return err
	}

	if err = bidRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
