package ports

import (
	"context"

	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid aggregates.
// Cross-bid invariants (one pending bid per request and courier, one accepted
// bid per request) are enforced by the negotiation command handlers inside a
// unit of work; the repository only provides the reads they need.
type BidRepository interface {
	// Add persists a new bid aggregate to storage.
	Add(ctx context.Context, aggregate *bid.Bid) error

	// Update persists changes to an existing bid aggregate.
	Update(ctx context.Context, aggregate *bid.Bid) error

	// Get retrieves a bid aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error)

	// GetAllByRequest retrieves every bid submitted on a request.
	GetAllByRequest(ctx context.Context, requestID kernel.UUID) ([]*bid.Bid, error)

	// GetPendingByRequestAndCourier retrieves the courier's pending bid on a
	// request, or a NotFound error when the courier has none. Used to enforce
	// the one-pending-bid-per-courier invariant.
	GetPendingByRequestAndCourier(
		ctx context.Context, requestID, courierID kernel.UUID) (*bid.Bid, error)
}
