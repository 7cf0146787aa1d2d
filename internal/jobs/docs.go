// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the platform.
//
// # Available Jobs
//
// 1. ExpirySweepJob - Runs every minute to revert stale relay handovers and
// dispute deliveries whose validation code expired
// 2. BillingRunJob - Runs monthly to close billing periods for all parties
// with unsettled ledger entries and issue their invoices
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(
//		sweepHandler, unsettledParties, closePeriod, issueInvoice, operator, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Sweep failures are logged; expired deadlines are also enforced at
// interaction time, so a missed sweep delays visibility but never
// correctness
// - The billing run isolates failures per party: one failing party is
// logged and skipped, the rest of the run proceeds
// - Failed job starts will stop any already running jobs
package jobs
