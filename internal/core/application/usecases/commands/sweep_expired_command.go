package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// ErrSweepExpiredCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrSweepExpiredCommandIsNotConstructed = errors.New(
	"SweepExpiredCommand must be created via NewSweepExpiredCommand constructor")

// SweepExpiredCommand triggers a pass over unresolved deliveries, reverting
// stale handovers and disputing deliveries whose validation code expired.
// Deadlines are enforced at call time on every path; the sweep only makes
// the state visible without waiting for the next participant action.
//
// Example:
//
//	cmd := NewSweepExpiredCommand()
//	handler := NewSweepExpiredCommandHandler(uowFactory, notifier)
//
//	// Run periodically from a scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("expiry sweep failed: %v", err)
//	}
type SweepExpiredCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepExpiredCommand creates a parameterless sweep command.
func NewSweepExpiredCommand() SweepExpiredCommand {
	return SweepExpiredCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SweepExpiredCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredCommandIsNotConstructed)
}
