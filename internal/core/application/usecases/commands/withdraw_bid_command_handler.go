package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
)

// WithdrawBidCommandHandler retracts a pending bid on behalf of the courier
// who placed it. Withdrawing is only possible while the bid is pending.
type WithdrawBidCommandHandler struct {
	uowFactory NegotiationUoWFactory
}

// NewWithdrawBidCommandHandler creates a handler for bid withdrawal.
func NewWithdrawBidCommandHandler(uowFactory NegotiationUoWFactory) WithdrawBidCommandHandler {
	return WithdrawBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bid withdrawal command.
func (h WithdrawBidCommandHandler) Handle(ctx context.Context, cmd WithdrawBidCommand) error {
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

	repo := uow.BidRepository()

	aggregate, err := repo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}
	if !aggregate.CourierID().IsEqual(cmd.Actor().ID()) {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "withdraw bid")
	}

	if err = aggregate.Withdraw(); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
