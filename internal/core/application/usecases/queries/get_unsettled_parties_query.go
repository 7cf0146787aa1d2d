package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

// ErrGetUnsettledPartiesQueryIsNotConstructed is returned when the query was
// not created via its constructor.
var ErrGetUnsettledPartiesQueryIsNotConstructed = errors.New(
	"GetUnsettledPartiesQuery must be created via NewGetUnsettledPartiesQuery constructor")

// GetUnsettledPartiesQuery retrieves the parties holding ledger entries not
// yet attached to a billing period. The billing run uses it to decide whose
// periods to close.
type GetUnsettledPartiesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnsettledPartiesQuery creates a parameterless query for all parties
// with open ledger entries.
func NewGetUnsettledPartiesQuery() GetUnsettledPartiesQuery {
	return GetUnsettledPartiesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnsettledPartiesQuery) Validate() error {
	return q.guard.Validate(ErrGetUnsettledPartiesQueryIsNotConstructed)
}
