package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/pkg/errs"
)

// SubmitBidCommandHandler places a pending bid on an open request.
// The one-pending-bid-per-courier invariant is enforced here, inside the
// transaction, not by storage alone.
type SubmitBidCommandHandler struct {
	uowFactory NegotiationUoWFactory
}

// NewSubmitBidCommandHandler creates a handler for bid submission.
func NewSubmitBidCommandHandler(uowFactory NegotiationUoWFactory) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bid submission command.
// Fails with InvalidState when the request is not open for bidding and with
// DuplicateBid when the courier already has a pending bid on it.
func (h SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsCourier() {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "submit bid")
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
	if req.Status() != request.Open {
		return errs.NewInvalidStateError(
			"request", request.Open.String(), req.Status().String())
	}

	bidRepo := uow.BidRepository()

	_, err = bidRepo.GetPendingByRequestAndCourier(ctx, cmd.RequestID(), cmd.Actor().ID())
	if err == nil {
		return errs.NewDuplicateBidError(cmd.RequestID().String(), cmd.Actor().ID().String())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	newBid, err := bid.NewBid(
		cmd.BidID(), cmd.RequestID(), cmd.Actor().ID(), cmd.Price(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = bidRepo.Add(ctx, newBid); err != nil {
		return err
	}

	// Version-guarded write on the unchanged request. A concurrent accept
	// bumps the version, so a submission that read the request as open
	// before the accept landed conflicts instead of slipping a pending bid
	// under a matched request.
	if err = uow.RequestRepository().Update(ctx, req); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
