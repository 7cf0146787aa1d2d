// Package requestrepo provides data transfer objects and mapping functions
// for delivery request persistence. It implements the repository pattern for
// the request aggregate, handling the conversion between domain entities and
// database representations.
package requestrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting delivery
// request aggregates. The version column backs optimistic locking of the
// negotiation engine.
type RequestDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	RequesterID  uuid.UUID   `gorm:"type:uuid;index"`
	Pickup       GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Drop         GeoPointDTO `gorm:"embedded;embeddedPrefix:drop_"`
	WindowFrom   time.Time
	WindowUntil  time.Time
	WeightGrams  int
	Fragile      bool
	Refrigerated bool
	PriceCents   int64
	Currency     string
	Status       int `gorm:"index"`
	Version      int64
}

// TableName specifies the database table name for request entities.
func (RequestDTO) TableName() string {
	return "requests"
}

// GeoPointDTO represents an embedded geographic point with its display
// address.
type GeoPointDTO struct {
	Lat     float64
	Lon     float64
	Address string
}

func geoPointFromDomain(p kernel.GeoPoint) GeoPointDTO {
	return GeoPointDTO{
		Lat:     p.Lat(),
		Lon:     p.Lon(),
		Address: p.Address(),
	}
}

func geoPointToDomain(dto GeoPointDTO) (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(dto.Lat, dto.Lon, dto.Address)
}

// fromDomain converts a request domain aggregate to its database
// representation.
func fromDomain(aggregate *request.DeliveryRequest) RequestDTO {
	return RequestDTO{
		ID:           aggregate.ID().Bytes(),
		RequesterID:  aggregate.RequesterID().Bytes(),
		Pickup:       geoPointFromDomain(aggregate.Pickup()),
		Drop:         geoPointFromDomain(aggregate.Drop()),
		WindowFrom:   aggregate.Window().From(),
		WindowUntil:  aggregate.Window().Until(),
		WeightGrams:  aggregate.Package().WeightGrams(),
		Fragile:      aggregate.Package().Fragile(),
		Refrigerated: aggregate.Package().Refrigerated(),
		PriceCents:   aggregate.Price().Cents(),
		Currency:     aggregate.Price().Currency(),
		Status:       int(aggregate.Status()),
		Version:      aggregate.Version(),
	}
}

// toDomain converts a database DTO back to a request domain aggregate.
func toDomain(dto RequestDTO) (*request.DeliveryRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := geoPointToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	drop, err := geoPointToDomain(dto.Drop)
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewTimeWindow(dto.WindowFrom, dto.WindowUntil)
	if err != nil {
		return nil, err
	}
	pack, err := request.NewPackageSpec(dto.WeightGrams, dto.Fragile, dto.Refrigerated)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.PriceCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	return request.RestoreDeliveryRequest(
		id, requesterID, pickup, drop, window, pack, price,
		request.Status(dto.Status), dto.Version)
}
