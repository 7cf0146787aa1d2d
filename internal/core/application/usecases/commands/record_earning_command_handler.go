package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"
)

// RecordEarningCommandHandler appends a courier credit to the ledger.
// Recording is idempotent on the delivery and party: re-delivery of the same
// completion event leaves the ledger unchanged.
type RecordEarningCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewRecordEarningCommandHandler creates a handler for earning entries.
func NewRecordEarningCommandHandler(uowFactory LedgerUoWFactory) RecordEarningCommandHandler {
	return RecordEarningCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the earning command. Only operators may record manual
// settlement movements.
func (h RecordEarningCommandHandler) Handle(ctx context.Context, cmd RecordEarningCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsOperator() {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "record earning")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LedgerRepository()

	_, err := repo.GetEntryByKey(ctx, cmd.DeliveryID(), ledger.Earning, cmd.PartyID())
	if err == nil {
		return uow.Commit(ctx)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	entry, err := ledger.NewEntry(
		cmd.EntryID(), cmd.DeliveryID(), cmd.PartyID(),
		cmd.Amount(), ledger.Earning, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = repo.AddEntry(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
