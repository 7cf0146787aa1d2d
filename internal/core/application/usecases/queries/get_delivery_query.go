package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGetDeliveryQueryIsNotConstructed is returned when the query was not
// created via its constructor.
var ErrGetDeliveryQueryIsNotConstructed = errors.New(
	"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor")

// GetDeliveryQuery retrieves a delivery's state, custody chain and tracking
// history.
type GetDeliveryQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for one delivery.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the delivery to project.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID { return q.deliveryID }

// GetDeliveryQueryResponse is the read model of one delivery.
type GetDeliveryQueryResponse struct {
	ID        kernel.UUID
	RequestID kernel.UUID
	HolderID  kernel.UUID
	Status    string
	Legs      []DeliveryLegResponse
	Tracking  []TrackingEventResponse
}

// DeliveryLegResponse is one custody leg in the chain.
type DeliveryLegResponse struct {
	HolderID    kernel.UUID
	FromAddress string
	ToAddress   string
	StartedAt   time.Time
	EndedAt     *time.Time
}

// TrackingEventResponse is one recorded state transition.
type TrackingEventResponse struct {
	Status     string
	Note       string
	OccurredAt time.Time
}
