package deliveryrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery with its legs and tracking events.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery, guarded by its optimistic version.
// Legs close and tracking grows on most transitions, so child rows are
// replaced wholesale inside the surrounding transaction.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	legs := dto.Legs
	tracking := dto.Tracking
	dto.Legs = nil
	dto.Tracking = nil

	db := r.db.WithContext(ctx)

	result := db.Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("Legs", "Tracking").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("delivery", aggregate.ID().String())
	}

	if err := db.Where("delivery_id = ?", dto.ID).Delete(&LegDTO{}).Error; err != nil {
		return err
	}
	if len(legs) > 0 {
		if err := db.Create(&legs).Error; err != nil {
			return err
		}
	}

	if err := db.Where("delivery_id = ?", dto.ID).Delete(&TrackingEventDTO{}).Error; err != nil {
		return err
	}
	if len(tracking) > 0 {
		if err := db.Create(&tracking).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID with its complete leg chain and tracking
// history.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.loadQuery(ctx).First(&dto, "deliveries.id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRequest retrieves the delivery created for a request.
func (r *GormDeliveryRepository) GetByRequest(
	ctx context.Context,
	requestID kernel.UUID,
) (*delivery.Delivery, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.loadQuery(ctx).First(&dto, "deliveries.request_id = ?", requestID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", requestID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnresolved retrieves deliveries in a non-terminal status for the
// periodic sweep.
func (r *GormDeliveryRepository) GetAllUnresolved(ctx context.Context) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.loadQuery(ctx).
		Find(&dtos, "deliveries.status IN ?", []int{
			int(delivery.Assigned),
			int(delivery.InTransit),
			int(delivery.AtRelay),
		}).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, aggregate)
	}

	return deliveries, nil
}

// loadQuery preloads child rows in seq order so restored chains keep their
// recording order.
func (r *GormDeliveryRepository) loadQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB {
			return db.Order("delivery_legs.seq")
		}).
		Preload("Tracking", func(db *gorm.DB) *gorm.DB {
			return db.Order("tracking_events.seq")
		})
}
