package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler projects a delivery with its leg chain and
// tracking history straight from the database.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for delivery projections.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the projection. Legs and tracking events come back in
// recording order.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	response, err := h.loadDelivery(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	response.Legs, err = h.loadLegs(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	response.Tracking, err = h.loadTracking(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	return response, nil
}

func (h GetDeliveryQueryHandler) loadDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) (GetDeliveryQueryResponse, error) {
	var response GetDeliveryQueryResponse
	var id, requestID, holderID uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			request_id,
			holder_id,
			status
		FROM deliveries
		WHERE id = ?
	`, deliveryID.String()).Row()

	if err := row.Scan(&id, &requestID, &holderID, &status); err != nil {
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"delivery", deliveryID.String(), err)
	}

	var err error
	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.HolderID, err = kernel.UUIDFromBytes(holderID[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	response.Status = delivery.Status(status).String()

	return response, nil
}

func (h GetDeliveryQueryHandler) loadLegs(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]DeliveryLegResponse, error) {
	legs := make([]DeliveryLegResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			holder_id,
			from_address,
			to_address,
			started_at,
			ended_at
		FROM delivery_legs
		WHERE delivery_id = ?
		ORDER BY seq
	`, deliveryID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var leg DeliveryLegResponse
		var holderID uuid.UUID
		var endedAt *time.Time

		if err = rows.Scan(
			&holderID,
			&leg.FromAddress,
			&leg.ToAddress,
			&leg.StartedAt,
			&endedAt,
		); err != nil {
			return nil, err
		}

		if leg.HolderID, err = kernel.UUIDFromBytes(holderID[:]); err != nil {
			return nil, err
		}
		leg.EndedAt = endedAt
		legs = append(legs, leg)
	}

	return legs, rows.Err()
}

func (h GetDeliveryQueryHandler) loadTracking(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]TrackingEventResponse, error) {
	events := make([]TrackingEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			note,
			occurred_at
		FROM tracking_events
		WHERE delivery_id = ?
		ORDER BY seq
	`, deliveryID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event TrackingEventResponse
		var status int

		if err = rows.Scan(&status, &event.Note, &event.OccurredAt); err != nil {
			return nil, err
		}
		event.Status = delivery.Status(status).String()
		events = append(events, event)
	}

	return events, rows.Err()
}
