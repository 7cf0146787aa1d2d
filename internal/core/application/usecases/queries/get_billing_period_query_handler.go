package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBillingPeriodQueryHandler projects a billing period with its attached
// entries and total straight from the database.
type GetBillingPeriodQueryHandler struct {
	db *gorm.DB
}

// NewGetBillingPeriodQueryHandler creates a handler for billing period
// projections.
func NewGetBillingPeriodQueryHandler(db *gorm.DB) GetBillingPeriodQueryHandler {
	return GetBillingPeriodQueryHandler{db: db}
}

// Handle executes the projection. Entries come back in recording order and
// the total is the signed sum of their amounts.
func (h GetBillingPeriodQueryHandler) Handle(
	ctx context.Context,
	query GetBillingPeriodQuery,
) (GetBillingPeriodQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBillingPeriodQueryResponse{}, err
	}

	response, err := h.loadPeriod(ctx, query.PeriodID())
	if err != nil {
		return GetBillingPeriodQueryResponse{}, err
	}

	response.Entries, response.Total, err = h.loadEntries(ctx, query.PeriodID())
	if err != nil {
		return GetBillingPeriodQueryResponse{}, err
	}

	return response, nil
}

func (h GetBillingPeriodQueryHandler) loadPeriod(
	ctx context.Context,
	periodID kernel.UUID,
) (GetBillingPeriodQueryResponse, error) {
	var response GetBillingPeriodQueryResponse
	var id, partyID uuid.UUID
	var status int
	var invoiceRef sql.NullString

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			party_id,
			start_at,
			end_at,
			status,
			invoice_ref
		FROM billing_periods
		WHERE id = ?
	`, periodID.String()).Row()

	if err := row.Scan(
		&id,
		&partyID,
		&response.Start,
		&response.End,
		&status,
		&invoiceRef,
	); err != nil {
		return GetBillingPeriodQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"billingPeriod", periodID.String(), err)
	}

	var err error
	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetBillingPeriodQueryResponse{}, err
	}
	if response.PartyID, err = kernel.UUIDFromBytes(partyID[:]); err != nil {
		return GetBillingPeriodQueryResponse{}, err
	}
	response.Status = ledger.PeriodStatus(status).String()
	response.InvoiceRef = invoiceRef.String

	return response, nil
}

func (h GetBillingPeriodQueryHandler) loadEntries(
	ctx context.Context,
	periodID kernel.UUID,
) ([]PeriodEntryResponse, kernel.Money, error) {
	entries := make([]PeriodEntryResponse, 0)
	var totalCents int64

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_id,
			amount_cents,
			currency,
			kind,
			created_at
		FROM ledger_entries
		WHERE billing_period_id = ?
		ORDER BY created_at
	`, periodID.String()).Rows()
	if err != nil {
		return nil, kernel.Money{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry PeriodEntryResponse
		var id, deliveryID uuid.UUID
		var cents int64
		var currency string
		var kind int

		if err = rows.Scan(
			&id,
			&deliveryID,
			&cents,
			&currency,
			&kind,
			&entry.CreatedAt,
		); err != nil {
			return nil, kernel.Money{}, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, kernel.Money{}, err
		}
		if entry.DeliveryID, err = kernel.UUIDFromBytes(deliveryID[:]); err != nil {
			return nil, kernel.Money{}, err
		}
		if entry.Amount, err = kernel.NewMoney(cents, currency); err != nil {
			return nil, kernel.Money{}, err
		}
		entry.Kind = ledger.Kind(kind).String()

		totalCents += cents
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, kernel.Money{}, err
	}

	total, err := kernel.NewMoney(totalCents, kernel.DefaultCurrency)
	if err != nil {
		return nil, kernel.Money{}, err
	}

	return entries, total, nil
}
