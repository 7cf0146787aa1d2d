package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates, including their legs, tracking events and validation state.
// Updates use the aggregate's optimistic version so fulfillment transitions
// for the same delivery serialize: the loser of a concurrent update receives
// a Conflict error.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery, guarded by the
	// aggregate's version. Returns Conflict when the stored version moved.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier, with its
	// complete leg chain and tracking history.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByRequest retrieves the delivery created for a request.
	GetByRequest(ctx context.Context, requestID kernel.UUID) (*delivery.Delivery, error)

	// GetAllUnresolved retrieves deliveries in a non-terminal status.
	// Used by the periodic sweep that expires stale handovers and
	// validation codes.
	GetAllUnresolved(ctx context.Context) ([]*delivery.Delivery, error)
}
