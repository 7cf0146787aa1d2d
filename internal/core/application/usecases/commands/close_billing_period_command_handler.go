package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"
)

// CloseBillingPeriodCommandHandler settles a party's unsettled entries into
// a new, immediately closed billing period. The transaction serializes
// concurrent closes for the same party: only one open period may exist, and
// a second close attempt fails with PeriodAlreadyOpen.
type CloseBillingPeriodCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewCloseBillingPeriodCommandHandler creates a handler for period closing.
func NewCloseBillingPeriodCommandHandler(
	uowFactory LedgerUoWFactory,
) CloseBillingPeriodCommandHandler {
	return CloseBillingPeriodCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the period close command and returns the closed period.
// Entries created up to the period end are attached; later entries wait for
// the next period.
func (h CloseBillingPeriodCommandHandler) Handle(
	ctx context.Context,
	cmd CloseBillingPeriodCommand,
) (*ledger.BillingPeriod, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if !cmd.Actor().IsOperator() {
		return nil, errs.NewUnauthorizedError(cmd.Actor().ID().String(), "close billing period")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LedgerRepository()

	_, err := repo.GetOpenPeriodByParty(ctx, cmd.PartyID())
	if err == nil {
		return nil, errs.NewPeriodAlreadyOpenError(cmd.PartyID().String())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	period, err := ledger.NewBillingPeriod(
		cmd.PeriodID(), cmd.PartyID(), cmd.Start(), cmd.End())
	if err != nil {
		return nil, err
	}
	if err = repo.AddPeriod(ctx, period); err != nil {
		return nil, err
	}

	entries, err := repo.GetUnsettledByParty(ctx, cmd.PartyID(), cmd.End())
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err = entry.AttachToPeriod(period.ID()); err != nil {
			return nil, err
		}
		if err = repo.UpdateEntry(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err = period.Close(); err != nil {
		return nil, err
	}
	if err = repo.UpdatePeriod(ctx, period); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return period, nil
}
