package commands

import (
	"context"
	"time"

	"dispatch/internal/pkg/errs"
)

// ReverseEntryCommandHandler records an offsetting adjustment for an earlier
// entry. The original entry is never edited; the pair nets to zero.
type ReverseEntryCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewReverseEntryCommandHandler creates a handler for entry reversal.
func NewReverseEntryCommandHandler(uowFactory LedgerUoWFactory) ReverseEntryCommandHandler {
	return ReverseEntryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reversal command. Only operators may correct the
// ledger.
func (h ReverseEntryCommandHandler) Handle(ctx context.Context, cmd ReverseEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsOperator() {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "reverse entry")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LedgerRepository()

	original, err := repo.GetEntry(ctx, cmd.EntryID())
	if err != nil {
		return err
	}

	adjustment, err := original.Reverse(cmd.AdjustmentID(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = repo.AddEntry(ctx, adjustment); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
