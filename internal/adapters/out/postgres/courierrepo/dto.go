// Package courierrepo provides data transfer objects and mapping functions
// for courier profile and availability persistence. Both aggregates belong
// to the courier context and share this package.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// profiles.
type CourierDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Rating float64
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// AvailabilityDTO represents the database structure for persisting courier
// route-segment declarations. The window columns are indexed for the
// overlap query feeding the matcher.
type AvailabilityDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CourierID     uuid.UUID   `gorm:"type:uuid;index"`
	From          GeoPointDTO `gorm:"embedded;embeddedPrefix:from_"`
	To            GeoPointDTO `gorm:"embedded;embeddedPrefix:to_"`
	WindowFrom    time.Time   `gorm:"index"`
	WindowUntil   time.Time   `gorm:"index"`
	CapacityGrams int
	Refrigerated  bool
}

// TableName specifies the database table name for availability entities.
func (AvailabilityDTO) TableName() string {
	return "availabilities"
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

// courierFromDomain converts a courier profile to its database
// representation.
func courierFromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:     aggregate.ID().Bytes(),
		Name:   aggregate.Name(),
		Rating: aggregate.Rating(),
	}
}

// courierToDomain converts a database DTO back to a courier profile.
func courierToDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, dto.Name, dto.Rating)
}

// availabilityFromDomain converts an availability declaration to its
// database representation.
func availabilityFromDomain(aggregate *courier.Availability) AvailabilityDTO {
	return AvailabilityDTO{
		ID:            aggregate.ID().Bytes(),
		CourierID:     aggregate.CourierID().Bytes(),
		From:          geoPointFromDomain(aggregate.From()),
		To:            geoPointFromDomain(aggregate.To()),
		WindowFrom:    aggregate.Window().From(),
		WindowUntil:   aggregate.Window().Until(),
		CapacityGrams: aggregate.CapacityGrams(),
		Refrigerated:  aggregate.Refrigerated(),
	}
}

// availabilityToDomain converts a database DTO back to an availability
// declaration.
func availabilityToDomain(dto AvailabilityDTO) (*courier.Availability, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	from, err := geoPointToDomain(dto.From)
	if err != nil {
		return nil, err
	}
	to, err := geoPointToDomain(dto.To)
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewTimeWindow(dto.WindowFrom, dto.WindowUntil)
	if err != nil {
		return nil, err
	}

	return courier.NewAvailability(
		id, courierID, from, to, window, dto.CapacityGrams, dto.Refrigerated)
}
