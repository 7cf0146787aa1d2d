package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirySweepJob periodically reverts stale relay handovers and flips
// deliveries with expired validation codes to Disputed. Both deadlines are
// also enforced at interaction time; the sweep only speeds up visibility.
type ExpirySweepJob struct {
	handler commands.SweepExpiredCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpirySweepJob creates the sweep job. It runs once a minute.
func NewExpirySweepJob(handler commands.SweepExpiredCommandHandler, logger *slog.Logger) *ExpirySweepJob {
	return &ExpirySweepJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "expiry_sweep_job"),
	}
}

// Start begins the sweep schedule.
func (j *ExpirySweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSweepExpiredCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep schedule.
func (j *ExpirySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry sweep job stopped")
}
