// Package ledgerrepo provides data transfer objects and mapping functions
// for settlement ledger persistence. Entries are append-only rows; billing
// periods group settled entries per party.
package ledgerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting ledger entries.
// The composite index over delivery, kind and party backs the settlement
// idempotency lookup. It is not unique: repeated adjustments on the same
// movement are legitimate.
type EntryDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID      uuid.UUID `gorm:"type:uuid;index:idx_entries_movement"`
	PartyID         uuid.UUID `gorm:"type:uuid;index;index:idx_entries_movement"`
	AmountCents     int64
	Currency        string
	Kind            int `gorm:"index:idx_entries_movement"`
	CreatedAt       time.Time
	BillingPeriodID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "ledger_entries"
}

// PeriodDTO represents the database structure for persisting billing
// periods.
type PeriodDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartyID    uuid.UUID `gorm:"type:uuid;index"`
	StartAt    time.Time
	EndAt      time.Time
	Status     int
	InvoiceRef string
}

// TableName specifies the database table name for billing periods.
func (PeriodDTO) TableName() string {
	return "billing_periods"
}

// entryFromDomain converts a ledger entry to its database representation.
func entryFromDomain(entry *ledger.Entry) EntryDTO {
	dto := EntryDTO{
		ID:          entry.ID().Bytes(),
		DeliveryID:  entry.DeliveryID().Bytes(),
		PartyID:     entry.PartyID().Bytes(),
		AmountCents: entry.Amount().Cents(),
		Currency:    entry.Amount().Currency(),
		Kind:        int(entry.Kind()),
		CreatedAt:   entry.CreatedAt(),
	}

	if periodID := entry.BillingPeriodID(); periodID != nil {
		raw := periodID.Bytes()
		dto.BillingPeriodID = &raw
	}

	return dto
}

// entryToDomain converts a database DTO back to a ledger entry.
func entryToDomain(dto EntryDTO) (*ledger.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}
	partyID, err := kernel.UUIDFromBytes(dto.PartyID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.AmountCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	var periodID *kernel.UUID
	if dto.BillingPeriodID != nil {
		pID, periodErr := kernel.UUIDFromBytes((*dto.BillingPeriodID)[:])
		if periodErr != nil {
			return nil, periodErr
		}
		periodID = &pID
	}

	return ledger.RestoreEntry(
		id, deliveryID, partyID, amount,
		ledger.Kind(dto.Kind), dto.CreatedAt, periodID)
}

// periodFromDomain converts a billing period to its database representation.
func periodFromDomain(period *ledger.BillingPeriod) PeriodDTO {
	return PeriodDTO{
		ID:         period.ID().Bytes(),
		PartyID:    period.PartyID().Bytes(),
		StartAt:    period.Start(),
		EndAt:      period.End(),
		Status:     int(period.Status()),
		InvoiceRef: period.InvoiceRef(),
	}
}

// periodToDomain converts a database DTO back to a billing period.
func periodToDomain(dto PeriodDTO) (*ledger.BillingPeriod, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	partyID, err := kernel.UUIDFromBytes(dto.PartyID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreBillingPeriod(
		id, partyID, dto.StartAt, dto.EndAt,
		ledger.PeriodStatus(dto.Status), dto.InvoiceRef)
}
