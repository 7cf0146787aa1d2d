package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for settlement entries
// and billing periods. Entries are append-only: the repository exposes no
// delete, and Update only persists the billing-period attachment.
type LedgerRepository interface {
	// AddEntry persists a new immutable ledger entry.
	AddEntry(ctx context.Context, entry *ledger.Entry) error

	// UpdateEntry persists an entry's billing-period attachment. All other
	// fields are immutable.
	UpdateEntry(ctx context.Context, entry *ledger.Entry) error

	// GetEntry retrieves an entry by its unique identifier.
	GetEntry(ctx context.Context, id kernel.UUID) (*ledger.Entry, error)

	// GetEntryByKey retrieves the entry recorded for a logical movement, or
	// a NotFound error. This is the idempotency check for re-delivered
	// completion events.
	GetEntryByKey(
		ctx context.Context,
		deliveryID kernel.UUID,
		kind ledger.Kind,
		partyID kernel.UUID,
	) (*ledger.Entry, error)

	// GetUnsettledByParty retrieves the party's entries not yet attached to
	// a billing period, created up to the given cutoff.
	GetUnsettledByParty(
		ctx context.Context, partyID kernel.UUID, upTo time.Time) ([]*ledger.Entry, error)

	// GetEntriesByPeriod retrieves the entries attached to a billing period.
	GetEntriesByPeriod(ctx context.Context, periodID kernel.UUID) ([]*ledger.Entry, error)

	// AddPeriod persists a new billing period.
	AddPeriod(ctx context.Context, period *ledger.BillingPeriod) error

	// UpdatePeriod persists a period's status and invoice reference.
	UpdatePeriod(ctx context.Context, period *ledger.BillingPeriod) error

	// GetPeriod retrieves a billing period by its unique identifier.
	GetPeriod(ctx context.Context, id kernel.UUID) (*ledger.BillingPeriod, error)

	// GetOpenPeriodByParty retrieves the party's open billing period, or a
	// NotFound error when none exists.
	GetOpenPeriodByParty(ctx context.Context, partyID kernel.UUID) (*ledger.BillingPeriod, error)
}
