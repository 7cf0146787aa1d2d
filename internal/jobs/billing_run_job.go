package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// BillingRunJob closes the previous calendar month for every party holding
// unsettled ledger entries and issues their invoices. Runs on the first day
// of each month.
type BillingRunJob struct {
	unsettledParties queries.GetUnsettledPartiesQueryHandler
	invoiceSequence  queries.GetNextInvoiceSequenceQueryHandler
	closePeriod      commands.CloseBillingPeriodCommandHandler
	issueInvoice     commands.IssueInvoiceCommandHandler
	operator         commands.Actor
	cron             *cron.Cron
	logger           *slog.Logger
}

// NewBillingRunJob creates the monthly billing job acting as the given
// platform operator.
func NewBillingRunJob(
	unsettledParties queries.GetUnsettledPartiesQueryHandler,
	invoiceSequence queries.GetNextInvoiceSequenceQueryHandler,
	closePeriod commands.CloseBillingPeriodCommandHandler,
	issueInvoice commands.IssueInvoiceCommandHandler,
	operator commands.Actor,
	logger *slog.Logger,
) *BillingRunJob {
	return &BillingRunJob{
		unsettledParties: unsettledParties,
		invoiceSequence:  invoiceSequence,
		closePeriod:      closePeriod,
		issueInvoice:     issueInvoice,
		operator:         operator,
		cron:             cron.New(),
		logger:           logger.With("component", "billing_run_job"),
	}
}

// Start schedules the run for 02:00 on the first of every month.
func (j *BillingRunJob) Start() error {
	_, err := j.cron.AddFunc("0 2 1 * *", func() {
		j.Run(context.Background(), time.Now().UTC())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Billing run job started (monthly)")
	return nil
}

// Stop stops the billing schedule.
func (j *BillingRunJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Billing run job stopped")
}

// Run executes one billing cycle for the calendar month preceding now.
// A failure for one party is logged and does not stop the run for the rest.
func (j *BillingRunJob) Run(ctx context.Context, now time.Time) {
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -1, 0)

	parties, err := j.unsettledParties.Handle(ctx, queries.NewGetUnsettledPartiesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Billing run failed to list parties", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Billing run started",
		"period_start", start, "period_end", end, "parties", len(parties))

	// Continue the month's invoice series from what is already persisted,
	// so a retried run never reissues a reference.
	sequenceQuery, err := queries.NewGetNextInvoiceSequenceQuery(end)
	if err != nil {
		j.logger.ErrorContext(ctx, "Billing run could not build sequence query", "error", err)
		return
	}
	sequence, err := j.invoiceSequence.Handle(ctx, sequenceQuery)
	if err != nil {
		j.logger.ErrorContext(ctx, "Billing run failed to derive invoice sequence", "error", err)
		return
	}

	for _, partyID := range parties {
		if j.billParty(ctx, partyID, start, end, sequence) {
			sequence++
		}
	}
}

func (j *BillingRunJob) billParty(
	ctx context.Context,
	partyID kernel.UUID,
	start, end time.Time,
	sequence int,
) bool {
	closeCmd, err := commands.NewCloseBillingPeriodCommand(
		j.operator, kernel.NewUUID(), partyID, start, end)
	if err != nil {
		j.logger.ErrorContext(ctx, "Billing run could not build close command",
			"party_id", partyID.String(), "error", err)
		return false
	}

	period, err := j.closePeriod.Handle(ctx, closeCmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Billing run failed to close period",
			"party_id", partyID.String(), "error", err)
		return false
	}

	invoiceCmd, err := commands.NewIssueInvoiceCommand(j.operator, period.ID(), sequence)
	if err != nil {
		j.logger.ErrorContext(ctx, "Billing run could not build invoice command",
			"period_id", period.ID().String(), "error", err)
		return false
	}

	// TODO: hand the document to a delivery channel once one exists;
	// for now issuing records the invoice reference on the period.
	document, err := j.issueInvoice.Handle(ctx, invoiceCmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Billing run failed to issue invoice",
			"period_id", period.ID().String(), "error", err)
		return false
	}

	j.logger.InfoContext(ctx, "Invoice issued",
		"party_id", partyID.String(),
		"period_id", period.ID().String(),
		"document_bytes", len(document))
	return true
}
