package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM.
type GormLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormLedgerRepository {
	return &GormLedgerRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddEntry persists a new immutable ledger entry.
func (r *GormLedgerRepository) AddEntry(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := entryFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// UpdateEntry persists an entry's billing-period attachment. All other
// columns are immutable and never touched. The write only lands on an
// unattached row: when two period closes race over the same entry, the
// slower one gets a Conflict error and rolls back.
func (r *GormLedgerRepository) UpdateEntry(ctx context.Context, entry *ledger.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := entryFromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("id = ? AND billing_period_id IS NULL", dto.ID).
		Update("billing_period_id", dto.BillingPeriodID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("ledgerEntry", entry.ID().String())
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// GetEntry retrieves an entry by ID.
func (r *GormLedgerRepository) GetEntry(ctx context.Context, id kernel.UUID) (*ledger.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ledgerEntry", id.String())
		}
		return nil, err
	}

	return entryToDomain(dto)
}

// GetEntryByKey retrieves the entry recorded for a logical movement, or a
// NotFound error. This is the idempotency check for re-delivered completion
// events.
func (r *GormLedgerRepository) GetEntryByKey(
	ctx context.Context,
	deliveryID kernel.UUID,
	kind ledger.Kind,
	partyID kernel.UUID,
) (*ledger.Entry, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}
	if err := partyID.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	err := r.db.WithContext(ctx).First(&dto,
		"delivery_id = ? AND kind = ? AND party_id = ?",
		deliveryID.Bytes(), int(kind), partyID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(
				"ledgerEntry", ledger.IdempotencyKey(deliveryID, kind, partyID))
		}
		return nil, err
	}

	return entryToDomain(dto)
}

// GetUnsettledByParty retrieves the party's entries not yet attached to a
// billing period, created up to the given cutoff, oldest first.
func (r *GormLedgerRepository) GetUnsettledByParty(
	ctx context.Context,
	partyID kernel.UUID,
	upTo time.Time,
) ([]*ledger.Entry, error) {
	if err := partyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "party_id = ? AND billing_period_id IS NULL AND created_at <= ?",
			partyID.Bytes(), upTo).Error
	if err != nil {
		return nil, err
	}

	return entriesToDomain(dtos)
}

// GetEntriesByPeriod retrieves the entries attached to a billing period,
// oldest first.
func (r *GormLedgerRepository) GetEntriesByPeriod(
	ctx context.Context,
	periodID kernel.UUID,
) ([]*ledger.Entry, error) {
	if err := periodID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "billing_period_id = ?", periodID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return entriesToDomain(dtos)
}

// AddPeriod persists a new billing period.
func (r *GormLedgerRepository) AddPeriod(ctx context.Context, period *ledger.BillingPeriod) error {
	if err := period.Validate(); err != nil {
		return err
	}

	dto := periodFromDomain(period)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(period.ID(), period)
	return nil
}

// UpdatePeriod persists a period's status and invoice reference.
func (r *GormLedgerRepository) UpdatePeriod(ctx context.Context, period *ledger.BillingPeriod) error {
	if err := period.Validate(); err != nil {
		return err
	}

	dto := periodFromDomain(period)
	result := r.db.WithContext(ctx).
		Model(&PeriodDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("billingPeriod", period.ID().String())
	}

	r.tracker.TrackAggregate(period.ID(), period)
	return nil
}

// GetPeriod retrieves a billing period by ID.
func (r *GormLedgerRepository) GetPeriod(ctx context.Context, id kernel.UUID) (*ledger.BillingPeriod, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PeriodDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("billingPeriod", id.String())
		}
		return nil, err
	}

	return periodToDomain(dto)
}

// GetOpenPeriodByParty retrieves the party's open billing period, or a
// NotFound error when none exists.
func (r *GormLedgerRepository) GetOpenPeriodByParty(
	ctx context.Context,
	partyID kernel.UUID,
) (*ledger.BillingPeriod, error) {
	if err := partyID.Validate(); err != nil {
		return nil, err
	}

	var dto PeriodDTO
	err := r.db.WithContext(ctx).First(&dto,
		"party_id = ? AND status = ?", partyID.Bytes(), int(ledger.PeriodOpen)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("billingPeriod", partyID.String())
		}
		return nil, err
	}

	return periodToDomain(dto)
}

func entriesToDomain(dtos []EntryDTO) ([]*ledger.Entry, error) {
	entries := make([]*ledger.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := entryToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
