package ports

import (
	"context"

	"dispatch/internal/core/domain/model/ledger"
)

// InvoiceRenderer produces the invoice document for a closed billing period.
type InvoiceRenderer interface {
	// Render builds the invoice document for the period and its attached
	// entries, returning the document bytes.
	Render(
		ctx context.Context,
		period *ledger.BillingPeriod,
		entries []*ledger.Entry,
		invoiceRef string,
	) ([]byte, error)
}
