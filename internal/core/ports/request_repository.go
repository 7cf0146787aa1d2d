// Package ports defines repository interfaces for the marketplace domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for delivery request
// aggregates. Updates use the aggregate's optimistic version: a concurrent
// writer losing the race receives a Conflict error, never a silent overwrite.
type RequestRepository interface {
	// Add persists a new delivery request aggregate to storage.
	Add(ctx context.Context, aggregate *request.DeliveryRequest) error

	// Update persists changes to an existing request, guarded by the
	// aggregate's version. Returns Conflict when the stored version moved.
	Update(ctx context.Context, aggregate *request.DeliveryRequest) error

	// Get retrieves a request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error)

	// GetAllOpen retrieves all requests currently accepting bids.
	GetAllOpen(ctx context.Context) ([]*request.DeliveryRequest, error)
}
