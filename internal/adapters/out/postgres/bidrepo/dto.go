// Package bidrepo provides data transfer objects and mapping functions for
// bid persistence.
package bidrepo

import (
	"time"

	"dispatch/internal/core/domain/model/bid"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BidDTO represents the database structure for persisting bid aggregates.
// The composite index on request and courier backs the one-pending-bid
// lookup of the negotiation engine.
type BidDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID  uuid.UUID `gorm:"type:uuid;index:idx_bids_request_courier"`
	CourierID  uuid.UUID `gorm:"type:uuid;index:idx_bids_request_courier"`
	PriceCents int64
	Currency   string
	Status     int
	CreatedAt  time.Time
	Version    int64
}

// TableName specifies the database table name for bid entities.
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid domain aggregate to its database representation.
func fromDomain(aggregate *bid.Bid) BidDTO {
	return BidDTO{
		ID:         aggregate.ID().Bytes(),
		RequestID:  aggregate.RequestID().Bytes(),
		CourierID:  aggregate.CourierID().Bytes(),
		PriceCents: aggregate.Price().Cents(),
		Currency:   aggregate.Price().Currency(),
		Status:     int(aggregate.Status()),
		CreatedAt:  aggregate.CreatedAt(),
		Version:    aggregate.Version(),
	}
}

// toDomain converts a database DTO back to a bid domain aggregate.
func toDomain(dto BidDTO) (*bid.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	return bid.RestoreBid(
		id, requestID, courierID, price, bid.Status(dto.Status), dto.CreatedAt, dto.Version)
}
