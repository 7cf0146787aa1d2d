package commands

import (
	"context"

	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// IssueInvoiceCommandHandler renders the invoice document for a closed
// billing period and records the issued reference on the period.
type IssueInvoiceCommandHandler struct {
	uowFactory LedgerUoWFactory
	renderer   ports.InvoiceRenderer
}

// NewIssueInvoiceCommandHandler creates a handler for invoice issuance.
func NewIssueInvoiceCommandHandler(
	uowFactory LedgerUoWFactory,
	renderer ports.InvoiceRenderer,
) IssueInvoiceCommandHandler {
	return IssueInvoiceCommandHandler{
		uowFactory: uowFactory,
		renderer:   renderer,
	}
}

// Handle processes the invoice command and returns the rendered document.
// Only operators may issue invoices.
func (h IssueInvoiceCommandHandler) Handle(
	ctx context.Context,
	cmd IssueInvoiceCommand,
) ([]byte, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if !cmd.Actor().IsOperator() {
		return nil, errs.NewUnauthorizedError(cmd.Actor().ID().String(), "issue invoice")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LedgerRepository()

	period, err := repo.GetPeriod(ctx, cmd.PeriodID())
	if err != nil {
		return nil, err
	}

	entries, err := repo.GetEntriesByPeriod(ctx, period.ID())
	if err != nil {
		return nil, err
	}

	invoiceRef := ledger.InvoiceRef(period.End(), cmd.Sequence())

	document, err := h.renderer.Render(ctx, period, entries, invoiceRef)
	if err != nil {
		return nil, err
	}

	if err = period.MarkInvoiced(invoiceRef); err != nil {
		return nil, err
	}
	if err = repo.UpdatePeriod(ctx, period); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return document, nil
}
