package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expirySweepJob *ExpirySweepJob
	billingRunJob  *BillingRunJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes application handlers as dependencies to wire up the job execution.
func NewJobManager(
	sweepHandler commands.SweepExpiredCommandHandler,
	unsettledParties queries.GetUnsettledPartiesQueryHandler,
	invoiceSequence queries.GetNextInvoiceSequenceQueryHandler,
	closePeriod commands.CloseBillingPeriodCommandHandler,
	issueInvoice commands.IssueInvoiceCommandHandler,
	operator commands.Actor,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expirySweepJob: NewExpirySweepJob(sweepHandler, logger),
		billingRunJob: NewBillingRunJob(
			unsettledParties, invoiceSequence, closePeriod, issueInvoice, operator, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.expirySweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiry sweep job: %w", err)
	}

	if err := jm.billingRunJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.expirySweepJob.Stop()
		return fmt.Errorf("failed to start billing run job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expirySweepJob.Stop()
	jm.billingRunJob.Stop()
}
