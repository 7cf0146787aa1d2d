package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GetBalanceQueryHandler computes a party's open balance from the ledger.
// Entries attached to an invoiced period are paid out and excluded; entries
// in open or merely closed periods still count.
type GetBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetBalanceQueryHandler creates a handler for balance queries.
func NewGetBalanceQueryHandler(db *gorm.DB) GetBalanceQueryHandler {
	return GetBalanceQueryHandler{db: db}
}

// Handle executes the balance query. A party with no ledger activity gets a
// zero balance in the platform currency, not an error.
func (h GetBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetBalanceQuery,
) (GetBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBalanceQueryResponse{}, err
	}

	var cents int64
	var count int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(e.amount_cents), 0),
			COUNT(e.id)
		FROM ledger_entries e
		LEFT JOIN billing_periods p ON p.id = e.billing_period_id
		WHERE e.party_id = ?
		  AND (e.billing_period_id IS NULL OR p.status != ?)
	`, query.PartyID().String(), int(ledger.PeriodInvoiced)).Row()

	if err := row.Scan(&cents, &count); err != nil {
		return GetBalanceQueryResponse{}, err
	}

	// Negative net balances are legitimate: adjustments can outweigh
	// earnings.
	balance, err := kernel.NewMoney(cents, kernel.DefaultCurrency)
	if err != nil {
		return GetBalanceQueryResponse{}, err
	}

	return GetBalanceQueryResponse{
		PartyID:    query.PartyID(),
		Balance:    balance,
		EntryCount: count,
	}, nil
}
