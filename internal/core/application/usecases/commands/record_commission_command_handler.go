package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"
)

// RecordCommissionCommandHandler appends the platform's share of a delivery
// to the ledger. Idempotent on the delivery and party, like earnings.
type RecordCommissionCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewRecordCommissionCommandHandler creates a handler for commission entries.
func NewRecordCommissionCommandHandler(uowFactory LedgerUoWFactory) RecordCommissionCommandHandler {
	return RecordCommissionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the commission command. Only operators may record manual
// settlement movements.
func (h RecordCommissionCommandHandler) Handle(ctx context.Context, cmd RecordCommissionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.Actor().IsOperator() {
		return errs.NewUnauthorizedError(cmd.Actor().ID().String(), "record commission")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LedgerRepository()

	_, err := repo.GetEntryByKey(ctx, cmd.DeliveryID(), ledger.Commission, cmd.PartyID())
	if err == nil {
		return uow.Commit(ctx)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	entry, err := ledger.NewEntry(
		cmd.EntryID(), cmd.DeliveryID(), cmd.PartyID(),
		cmd.Amount(), ledger.Commission, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = repo.AddEntry(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
