package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier profiles.
type CourierRepository interface {
	// Add persists a new courier profile to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier profile.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier profile by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetRatings retrieves the reliability ratings for the given couriers.
	// Couriers without a stored rating are absent from the result.
	GetRatings(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]float64, error)
}

// AvailabilityRepository defines the persistence contract for courier
// route-segment declarations. The matcher reads a consistent snapshot of the
// pool; declarations are owned by their couriers.
type AvailabilityRepository interface {
	// Add persists a new availability declaration to storage.
	Add(ctx context.Context, aggregate *courier.Availability) error

	// Remove deletes a declaration, e.g. when the courier retracts the run.
	Remove(ctx context.Context, id kernel.UUID) error

	// Get retrieves a declaration by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Availability, error)

	// GetOverlapping retrieves all declarations whose window overlaps the
	// given one. This is the candidate pool handed to the matcher.
	GetOverlapping(ctx context.Context, window kernel.TimeWindow) ([]*courier.Availability, error)
}
