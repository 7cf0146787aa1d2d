// Package notify provides a logging implementation of the Notifier port.
// Notifications are best-effort: they fire after a transaction commits and a
// failure to deliver one never fails the committed operation.
package notify

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/gommon/log"
)

// LogNotifier announces lifecycle events through the application logger.
// It stands in for a push or messaging channel.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a notifier writing to the given logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyBidAccepted announces that a bid won its request.
func (n *LogNotifier) NotifyBidAccepted(_ context.Context, requestID, bidID, courierID kernel.UUID) {
	n.logger.Infoj(log.JSON{
		"event":      "bid_accepted",
		"request_id": requestID.String(),
		"bid_id":     bidID.String(),
		"courier_id": courierID.String(),
	})
}

// NotifyHandover announces an initiated relay handover to the next courier.
func (n *LogNotifier) NotifyHandover(_ context.Context, deliveryID, nextCourierID kernel.UUID) {
	n.logger.Infoj(log.JSON{
		"event":           "handover_initiated",
		"delivery_id":     deliveryID.String(),
		"next_courier_id": nextCourierID.String(),
	})
}

// NotifyDelivered announces a confirmed delivery.
func (n *LogNotifier) NotifyDelivered(_ context.Context, deliveryID kernel.UUID) {
	n.logger.Infoj(log.JSON{
		"event":       "delivered",
		"delivery_id": deliveryID.String(),
	})
}

// NotifyDisputed announces a delivery that entered dispute resolution.
func (n *LogNotifier) NotifyDisputed(_ context.Context, deliveryID kernel.UUID) {
	n.logger.Warnj(log.JSON{
		"event":       "disputed",
		"delivery_id": deliveryID.String(),
	})
}
