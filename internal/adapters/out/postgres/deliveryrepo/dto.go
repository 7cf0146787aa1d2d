// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. A delivery aggregate spans three tables: the
// delivery row itself, its custody legs and its tracking events. The
// repository loads and stores all three as one unit.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Pending handover and validation code state live on nullable
// columns; presence is keyed on the pending courier and code value.
type DeliveryDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	RequestID uuid.UUID   `gorm:"type:uuid;uniqueIndex"`
	HolderID  uuid.UUID   `gorm:"type:uuid;index"`
	Pickup    GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Drop      GeoPointDTO `gorm:"embedded;embeddedPrefix:drop_"`
	Status    int         `gorm:"index"`

	PendingNextCourierID *uuid.UUID `gorm:"type:uuid"`
	PendingRelayLat      *float64
	PendingRelayLon      *float64
	PendingRelayAddress  *string
	PendingDeadline      *time.Time

	CodeValue      *string
	CodeExpiresAt  *time.Time
	CodeLegIndex   *int
	FailedAttempts int
	LockedUntil    *time.Time

	AcknowledgedHandovers int
	CancelReason          string
	Version               int64

	Legs     []LegDTO           `gorm:"foreignKey:DeliveryID;references:ID"`
	Tracking []TrackingEventDTO `gorm:"foreignKey:DeliveryID;references:ID"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// LegDTO represents one custody segment row. Seq preserves chain order.
type LegDTO struct {
	DeliveryID uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Seq        int         `gorm:"primaryKey"`
	HolderID   uuid.UUID   `gorm:"type:uuid"`
	From       GeoPointDTO `gorm:"embedded;embeddedPrefix:from_"`
	To         GeoPointDTO `gorm:"embedded;embeddedPrefix:to_"`
	StartedAt  time.Time
	EndedAt    *time.Time
}

// TableName specifies the database table name for leg entities.
func (LegDTO) TableName() string {
	return "delivery_legs"
}

// TrackingEventDTO represents one audit trail row. Seq preserves recording
// order.
type TrackingEventDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	Status     int
	Note       string
	OccurredAt time.Time
}

// TableName specifies the database table name for tracking events.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
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

// fromDomain converts a delivery domain aggregate to its database
// representation, including child rows for legs and tracking events.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:                    aggregate.ID().Bytes(),
		RequestID:             aggregate.RequestID().Bytes(),
		HolderID:              aggregate.HolderID().Bytes(),
		Pickup:                geoPointFromDomain(aggregate.Pickup()),
		Drop:                  geoPointFromDomain(aggregate.Drop()),
		Status:                int(aggregate.Status()),
		FailedAttempts:        aggregate.FailedAttempts(),
		LockedUntil:           aggregate.LockedUntil(),
		AcknowledgedHandovers: aggregate.AcknowledgedHandovers(),
		CancelReason:          aggregate.CancelReason(),
		Version:               aggregate.Version(),
	}

	if pending := aggregate.PendingHandover(); pending != nil {
		nextCourierID := pending.NextCourierID().Bytes()
		relay := pending.RelayPoint()
		lat, lon, address := relay.Lat(), relay.Lon(), relay.Address()
		deadline := pending.Deadline()

		dto.PendingNextCourierID = &nextCourierID
		dto.PendingRelayLat = &lat
		dto.PendingRelayLon = &lon
		dto.PendingRelayAddress = &address
		dto.PendingDeadline = &deadline
	}

	if code := aggregate.ValidationCode(); code != nil {
		value := code.Code()
		expiresAt := code.ExpiresAt()
		legIndex := code.LegIndex()
		dto.CodeValue = &value
		dto.CodeExpiresAt = &expiresAt
		dto.CodeLegIndex = &legIndex
	}

	for seq, leg := range aggregate.Legs() {
		dto.Legs = append(dto.Legs, LegDTO{
			DeliveryID: dto.ID,
			Seq:        seq,
			HolderID:   leg.HolderID().Bytes(),
			From:       geoPointFromDomain(leg.From()),
			To:         geoPointFromDomain(leg.To()),
			StartedAt:  leg.StartedAt(),
			EndedAt:    leg.EndedAt(),
		})
	}

	for seq, event := range aggregate.Tracking() {
		dto.Tracking = append(dto.Tracking, TrackingEventDTO{
			DeliveryID: dto.ID,
			Seq:        seq,
			Status:     int(event.Status()),
			Note:       event.Note(),
			OccurredAt: event.At(),
		})
	}

	return dto
}

// toDomain converts a database DTO back to a delivery domain aggregate.
// Legs and tracking must already be loaded in seq order.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	holderID, err := kernel.UUIDFromBytes(dto.HolderID[:])
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

	legs := make([]*delivery.Leg, 0, len(dto.Legs))
	for _, legDTO := range dto.Legs {
		leg, legErr := legToDomain(legDTO)
		if legErr != nil {
			return nil, legErr
		}
		legs = append(legs, leg)
	}

	pending, err := pendingToDomain(dto)
	if err != nil {
		return nil, err
	}

	var code *delivery.ValidationCode
	if dto.CodeValue != nil && dto.CodeExpiresAt != nil && dto.CodeLegIndex != nil {
		code, err = delivery.RestoreValidationCode(*dto.CodeValue, *dto.CodeExpiresAt, *dto.CodeLegIndex)
		if err != nil {
			return nil, err
		}
	}

	tracking := make([]delivery.TrackingEvent, 0, len(dto.Tracking))
	for _, eventDTO := range dto.Tracking {
		event, eventErr := delivery.NewTrackingEvent(
			delivery.Status(eventDTO.Status), eventDTO.Note, eventDTO.OccurredAt)
		if eventErr != nil {
			return nil, eventErr
		}
		tracking = append(tracking, event)
	}

	return delivery.RestoreDelivery(
		id, requestID, holderID, pickup, drop,
		delivery.Status(dto.Status),
		legs, pending, code,
		dto.FailedAttempts, dto.LockedUntil,
		dto.AcknowledgedHandovers, dto.CancelReason,
		tracking, dto.Version)
}

func legToDomain(dto LegDTO) (*delivery.Leg, error) {
	holderID, err := kernel.UUIDFromBytes(dto.HolderID[:])
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

	return delivery.RestoreLeg(holderID, from, to, dto.StartedAt, dto.EndedAt)
}

func pendingToDomain(dto DeliveryDTO) (*delivery.PendingHandover, error) {
	if dto.PendingNextCourierID == nil {
		return nil, nil
	}

	nextCourierID, err := kernel.UUIDFromBytes((*dto.PendingNextCourierID)[:])
	if err != nil {
		return nil, err
	}
	relay, err := kernel.NewGeoPoint(
		*dto.PendingRelayLat, *dto.PendingRelayLon, *dto.PendingRelayAddress)
	if err != nil {
		return nil, err
	}

	return delivery.NewPendingHandover(nextCourierID, relay, *dto.PendingDeadline)
}
