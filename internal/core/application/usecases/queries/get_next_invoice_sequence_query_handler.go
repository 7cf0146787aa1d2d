package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetNextInvoiceSequenceQueryHandler derives the next invoice sequence number
// for a month from the references already persisted on billing periods.
type GetNextInvoiceSequenceQueryHandler struct {
	db *gorm.DB
}

// NewGetNextInvoiceSequenceQueryHandler creates a handler for invoice
// sequence queries.
func NewGetNextInvoiceSequenceQueryHandler(db *gorm.DB) GetNextInvoiceSequenceQueryHandler {
	return GetNextInvoiceSequenceQueryHandler{db: db}
}

// Handle executes the query. A month with no invoiced periods yields 1.
func (h GetNextInvoiceSequenceQueryHandler) Handle(
	ctx context.Context,
	query GetNextInvoiceSequenceQuery,
) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	prefix := "INV-" + query.Month().Format("200601") + "-%"

	var issued int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM billing_periods
		WHERE invoice_ref LIKE ?
	`, prefix).Scan(&issued).Error
	if err != nil {
		return 0, err
	}

	return int(issued) + 1, nil
}
