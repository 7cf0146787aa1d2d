// Package queries contains read-only operations for the marketplace.
// Implements the query side of the CQRS architecture: handlers either run
// raw SQL projections or compose domain services over repository reads, and
// never mutate state.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGetCandidatesQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetCandidatesQueryIsNotConstructed = errors.New(
	"GetCandidatesQuery must be created via NewGetCandidatesQuery constructor")

// GetCandidatesQuery ranks available couriers for an open request.
type GetCandidatesQuery struct {
	requestID kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

// NewGetCandidatesQuery creates a query for ranked courier candidates.
// A limit <= 0 returns the whole ranking.
func NewGetCandidatesQuery(requestID kernel.UUID, limit int) (GetCandidatesQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetCandidatesQuery{}, err
	}

	return GetCandidatesQuery{
		requestID: requestID,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetCandidatesQueryIsNotConstructed)
}

// RequestID returns the request to rank candidates for.
func (q GetCandidatesQuery) RequestID() kernel.UUID { return q.requestID }

// Limit returns the maximum number of candidates to return.
func (q GetCandidatesQuery) Limit() int { return q.limit }

// GetCandidatesQueryResponse is one ranked courier proposal.
type GetCandidatesQueryResponse struct {
	CourierID      kernel.UUID
	AvailabilityID kernel.UUID
	Score          float64
	DetourKm       float64
}
