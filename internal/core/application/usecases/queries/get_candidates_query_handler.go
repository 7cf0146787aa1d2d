package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// GetCandidatesQueryHandler ranks courier availability declarations against
// an open request. Unlike the SQL projections in this package, candidate
// ranking runs through the matching domain service: the scoring function is
// domain logic and lives in one place.
type GetCandidatesQueryHandler struct {
	requestRepo      ports.RequestRepository
	availabilityRepo ports.AvailabilityRepository
	courierRepo      ports.CourierRepository
	matcher          services.Matcher
}

// NewGetCandidatesQueryHandler creates a handler for candidate ranking.
func NewGetCandidatesQueryHandler(
	requestRepo ports.RequestRepository,
	availabilityRepo ports.AvailabilityRepository,
	courierRepo ports.CourierRepository,
	matcher services.Matcher,
) GetCandidatesQueryHandler {
	return GetCandidatesQueryHandler{
		requestRepo:      requestRepo,
		availabilityRepo: availabilityRepo,
		courierRepo:      courierRepo,
		matcher:          matcher,
	}
}

// Handle executes the ranking. The pool is the set of declarations whose
// window overlaps the request's desired window; ratings feed the score as a
// reliability multiplier.
func (h GetCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetCandidatesQuery,
) ([]GetCandidatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	req, err := h.requestRepo.Get(ctx, query.RequestID())
	if err != nil {
		return nil, err
	}

	pool, err := h.availabilityRepo.GetOverlapping(ctx, req.Window())
	if err != nil {
		return nil, err
	}

	courierIDs := make([]kernel.UUID, 0, len(pool))
	for _, a := range pool {
		courierIDs = append(courierIDs, a.CourierID())
	}

	ratings, err := h.courierRepo.GetRatings(ctx, courierIDs)
	if err != nil {
		return nil, err
	}

	candidates, err := h.matcher.FindCandidates(req, pool, ratings, query.Limit())
	if err != nil {
		return nil, err
	}

	responses := make([]GetCandidatesQueryResponse, 0, len(candidates))
	for _, c := range candidates {
		responses = append(responses, GetCandidatesQueryResponse{
			CourierID:      c.CourierID,
			AvailabilityID: c.AvailabilityID,
			Score:          c.Score,
			DetourKm:       c.DetourKm,
		})
	}

	return responses, nil
}
