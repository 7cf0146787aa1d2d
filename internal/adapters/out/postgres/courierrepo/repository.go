package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier profile to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := courierFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier profile to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := courierFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier profile by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return courierToDomain(dto)
}

// GetRatings retrieves the reliability ratings for the given couriers.
// Couriers without a stored profile are absent from the result.
func (r *GormCourierRepository) GetRatings(
	ctx context.Context,
	ids []kernel.UUID,
) (map[kernel.UUID]float64, error) {
	ratings := make(map[kernel.UUID]float64, len(ids))
	if len(ids) == 0 {
		return ratings, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).
		Select("id", "rating").
		Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		ratings[id] = dto.Rating
	}

	return ratings, nil
}

// GormAvailabilityRepository implements AvailabilityRepository using GORM.
type GormAvailabilityRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormAvailabilityRepository creates a new GORM availability repository.
func NewGormAvailabilityRepository(db *gorm.DB, tracker aggregateTracker) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new availability declaration to the database.
func (r *GormAvailabilityRepository) Add(ctx context.Context, aggregate *courier.Availability) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := availabilityFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Remove deletes a declaration, e.g. when the courier retracts the run.
func (r *GormAvailabilityRepository) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AvailabilityDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("availability", id.String())
	}

	return nil
}

// Get retrieves a declaration by ID.
func (r *GormAvailabilityRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Availability, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AvailabilityDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("availability", id.String())
		}
		return nil, err
	}

	return availabilityToDomain(dto)
}

// GetOverlapping retrieves all declarations whose window overlaps the given
// half-open interval. This is the candidate pool handed to the matcher.
func (r *GormAvailabilityRepository) GetOverlapping(
	ctx context.Context,
	window kernel.TimeWindow,
) ([]*courier.Availability, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	var dtos []AvailabilityDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "window_from < ? AND window_until > ?",
			window.Until(), window.From()).Error; err != nil {
		return nil, err
	}

	availabilities := make([]*courier.Availability, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := availabilityToDomain(dto)
		if err != nil {
			return nil, err
		}
		availabilities = append(availabilities, aggregate)
	}

	return availabilities, nil
}
