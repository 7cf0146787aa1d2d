package services

import (
	"sort"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
)

// MatchingPolicy holds the tunable parameters of the candidate matcher.
// The zero value is not usable; start from DefaultMatchingPolicy.
type MatchingPolicy struct {
	// ProximityRadiusKm is how far a courier's route segment may pass from
	// the pickup and drop points and still qualify.
	ProximityRadiusKm float64

	// DetourWeight scores the extra distance the delivery adds to the
	// courier's declared segment. Lower detour scores higher.
	DetourWeight float64

	// SlackWeight scores the spare time in the courier's window beyond the
	// overlap with the request. A tighter-but-feasible fit scores higher.
	SlackWeight float64
}

// DefaultMatchingPolicy returns the platform default matching parameters.
func DefaultMatchingPolicy() MatchingPolicy {
	return MatchingPolicy{
		ProximityRadiusKm: 5,
		DetourWeight:      0.5,
		SlackWeight:       0.3,
	}
}

// Candidate is one ranked match between a delivery request and a courier's
// availability declaration.
type Candidate struct {
	CourierID      kernel.UUID
	AvailabilityID kernel.UUID
	Score          float64
	DetourKm       float64
}

// Matcher is a domain service that pairs posted delivery requests with
// courier availability declarations. It is side-effect free: it never
// mutates the request or the pool, and an empty result is a normal outcome,
// not an error.
//
// Selection algorithm:
//   - Filters the pool to declarations whose window overlaps the request's
//     desired window, whose route segment passes within the proximity radius
//     of both pickup and drop points, and whose capacity and refrigeration
//     satisfy the package constraints
//   - Scores the survivors by weighted detour distance and window slack,
//     scaled by the courier's reliability rating
//   - Breaks ties by earliest availability-window start, then by courier id,
//     so rankings are reproducible
type Matcher struct {
	policy MatchingPolicy
}

// NewMatcher creates a Matcher with the given policy.
func NewMatcher(policy MatchingPolicy) Matcher {
	return Matcher{policy: policy}
}

// FindCandidates ranks the pool against the request and returns up to limit
// candidates, best first. Ratings maps courier ids to reliability scores in
// [0, 1]; couriers missing from the map get the platform default.
//
// A limit <= 0 means no limit.
func (m Matcher) FindCandidates(
	req *request.DeliveryRequest,
	pool []*courier.Availability,
	ratings map[kernel.UUID]float64,
	limit int,
) ([]Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	type scored struct {
		candidate   Candidate
		windowStart int64
	}

	matches := make([]scored, 0, len(pool))

	for _, a := range pool {
		if err := a.Validate(); err != nil {
			return nil, err
		}

		if !a.CanCarry(req.Package().WeightGrams(), req.Package().Refrigerated()) {
			continue
		}

		overlap, err := a.Window().Overlap(req.Window())
		if err != nil {
			return nil, err
		}
		if overlap <= 0 {
			continue
		}

		near, detourKm, err := m.segmentFits(req, a)
		if err != nil {
			return nil, err
		}
		if !near {
			continue
		}

		slackHours := (a.Window().Duration() - overlap).Hours()

		rating, ok := ratings[a.CourierID()]
		if !ok {
			rating = courier.DefaultRating
		}

		score := rating * (m.policy.DetourWeight/(1+detourKm) +
			m.policy.SlackWeight/(1+slackHours))

		matches = append(matches, scored{
			candidate: Candidate{
				CourierID:      a.CourierID(),
				AvailabilityID: a.ID(),
				Score:          score,
				DetourKm:       detourKm,
			},
			windowStart: a.Window().From().UnixNano(),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].candidate.Score != matches[j].candidate.Score {
			return matches[i].candidate.Score > matches[j].candidate.Score
		}
		if matches[i].windowStart != matches[j].windowStart {
			return matches[i].windowStart < matches[j].windowStart
		}
		return matches[i].candidate.CourierID.String() < matches[j].candidate.CourierID.String()
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	candidates := make([]Candidate, 0, len(matches))
	for _, s := range matches {
		candidates = append(candidates, s.candidate)
	}

	return candidates, nil
}

// segmentFits checks the proximity filter and computes the detour the
// delivery adds to the courier's declared segment.
func (m Matcher) segmentFits(
	req *request.DeliveryRequest,
	a *courier.Availability,
) (bool, float64, error) {
	pickupDist, err := req.Pickup().DistanceToSegmentKm(a.From(), a.To())
	if err != nil {
		return false, 0, err
	}
	if pickupDist > m.policy.ProximityRadiusKm {
		return false, 0, nil
	}

	dropDist, err := req.Drop().DistanceToSegmentKm(a.From(), a.To())
	if err != nil {
		return false, 0, err
	}
	if dropDist > m.policy.ProximityRadiusKm {
		return false, 0, nil
	}

	detourKm, err := m.detourKm(req, a)
	if err != nil {
		return false, 0, err
	}

	return true, detourKm, nil
}

// detourKm is the extra distance of running from -> pickup -> drop -> to
// compared with the courier's direct from -> to segment.
func (m Matcher) detourKm(req *request.DeliveryRequest, a *courier.Availability) (float64, error) {
	toPickup, err := a.From().DistanceKm(req.Pickup())
	if err != nil {
		return 0, err
	}
	haul, err := req.Pickup().DistanceKm(req.Drop())
	if err != nil {
		return 0, err
	}
	fromDrop, err := req.Drop().DistanceKm(a.To())
	if err != nil {
		return 0, err
	}
	direct, err := a.SegmentLengthKm()
	if err != nil {
		return 0, err
	}

	detour := toPickup + haul + fromDrop - direct
	if detour < 0 {
		detour = 0
	}
	return detour, nil
}
