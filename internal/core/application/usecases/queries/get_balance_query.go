package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGetBalanceQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetBalanceQueryIsNotConstructed = errors.New(
	"GetBalanceQuery must be created via NewGetBalanceQuery constructor")

// GetBalanceQuery computes a party's open balance: the sum of its ledger
// entries not yet settled by an invoiced billing period.
type GetBalanceQuery struct {
	partyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBalanceQuery creates a balance query for a party.
func NewGetBalanceQuery(partyID kernel.UUID) (GetBalanceQuery, error) {
	if err := partyID.Validate(); err != nil {
		return GetBalanceQuery{}, err
	}

	return GetBalanceQuery{
		partyID: partyID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceQueryIsNotConstructed)
}

// PartyID returns the party whose balance is computed.
func (q GetBalanceQuery) PartyID() kernel.UUID { return q.partyID }

// GetBalanceQueryResponse is a party's open balance.
type GetBalanceQueryResponse struct {
	PartyID    kernel.UUID
	Balance    kernel.Money
	EntryCount int
}
