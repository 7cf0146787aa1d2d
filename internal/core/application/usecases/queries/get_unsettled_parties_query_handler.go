package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnsettledPartiesQueryHandler projects the distinct parties with ledger
// entries awaiting settlement.
type GetUnsettledPartiesQueryHandler struct {
	db *gorm.DB
}

// NewGetUnsettledPartiesQueryHandler creates a handler for unsettled-party
// queries.
func NewGetUnsettledPartiesQueryHandler(db *gorm.DB) GetUnsettledPartiesQueryHandler {
	return GetUnsettledPartiesQueryHandler{db: db}
}

// Handle executes the query. No unsettled entries yields an empty slice.
func (h GetUnsettledPartiesQueryHandler) Handle(
	ctx context.Context,
	query GetUnsettledPartiesQuery,
) ([]kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT party_id
		FROM ledger_entries
		WHERE billing_period_id IS NULL
		ORDER BY party_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parties []kernel.UUID
	for rows.Next() {
		var raw uuid.UUID
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		partyID, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		parties = append(parties, partyID)
	}

	return parties, rows.Err()
}
