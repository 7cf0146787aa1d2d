package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Notifier dispatches best-effort notifications to the surrounding system.
// Implementations must never fail a committed state transition: delivery
// failures are logged, not propagated.
type Notifier interface {
	// NotifyBidAccepted announces that a bid won its request.
	NotifyBidAccepted(ctx context.Context, requestID, bidID, courierID kernel.UUID)

	// NotifyHandover announces an initiated relay handover to the next courier.
	NotifyHandover(ctx context.Context, deliveryID, nextCourierID kernel.UUID)

	// NotifyDelivered announces a confirmed delivery.
	NotifyDelivered(ctx context.Context, deliveryID kernel.UUID)

	// NotifyDisputed announces a delivery that entered dispute resolution.
	NotifyDisputed(ctx context.Context, deliveryID kernel.UUID)
}
