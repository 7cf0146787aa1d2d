package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
)

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse returns the identifier of a server-generated resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// GeoPoint is a transport coordinate with its street address.
type GeoPoint struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

func (p GeoPoint) toDomain() (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(p.Lat, p.Lon, p.Address)
}

// Window is a half-open time interval.
type Window struct {
	From  time.Time `json:"from"`
	Until time.Time `json:"until"`
}

func (w Window) toDomain() (kernel.TimeWindow, error) {
	return kernel.NewTimeWindow(w.From, w.Until)
}

// Amount is a monetary value in minor units.
type Amount struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

func (a Amount) toDomain() (kernel.Money, error) {
	currency := a.Currency
	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	return kernel.NewMoney(a.Cents, currency)
}

// Package describes the parcel of a delivery request.
type Package struct {
	WeightGrams  int  `json:"weight_grams"`
	Fragile      bool `json:"fragile"`
	Refrigerated bool `json:"refrigerated"`
}

// CreateRequestBody is the payload for creating a delivery request.
type CreateRequestBody struct {
	Pickup  GeoPoint `json:"pickup"`
	Drop    GeoPoint `json:"drop"`
	Window  Window   `json:"window"`
	Package Package  `json:"package"`
	Price   Amount   `json:"price"`
}

// ReasonBody carries an optional free-text reason for a cancellation.
type ReasonBody struct {
	Reason string `json:"reason"`
}

// SubmitBidBody is the payload for bidding on a request.
type SubmitBidBody struct {
	Price Amount `json:"price"`
}

// DeclareAvailabilityBody is the payload for declaring a courier run.
type DeclareAvailabilityBody struct {
	From          GeoPoint `json:"from"`
	To            GeoPoint `json:"to"`
	Window        Window   `json:"window"`
	CapacityGrams int      `json:"capacity_grams"`
	Refrigerated  bool     `json:"refrigerated"`
}

// HandoverBody is the payload for initiating a relay handover.
type HandoverBody struct {
	NextCourierID string   `json:"next_courier_id"`
	RelayPoint    GeoPoint `json:"relay_point"`
}

// ValidateDeliveryBody carries the recipient's validation code.
type ValidateDeliveryBody struct {
	Code string `json:"code"`
}

// ValidationCodeResponse returns the freshly issued plaintext code.
type ValidationCodeResponse struct {
	Code string `json:"code"`
}

// LedgerMovementBody is the payload for recording an earning or commission.
type LedgerMovementBody struct {
	DeliveryID string `json:"delivery_id"`
	PartyID    string `json:"party_id"`
	Amount     Amount `json:"amount"`
}

// CloseBillingPeriodBody is the payload for closing a party's billing period.
type CloseBillingPeriodBody struct {
	PartyID string    `json:"party_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// IssueInvoiceBody carries the invoice sequence number for the period.
type IssueInvoiceBody struct {
	Sequence int `json:"sequence"`
}

// Candidate is one ranked courier proposal for an open request.
type Candidate struct {
	CourierID      string  `json:"courier_id"`
	AvailabilityID string  `json:"availability_id"`
	Score          float64 `json:"score"`
	DetourKm       float64 `json:"detour_km"`
}

// Balance is a party's open settlement balance.
type Balance struct {
	PartyID    string `json:"party_id"`
	Amount     Amount `json:"amount"`
	EntryCount int    `json:"entry_count"`
}

// Delivery is the read model of one delivery.
type Delivery struct {
	ID        string          `json:"id"`
	RequestID string          `json:"request_id"`
	HolderID  string          `json:"holder_id"`
	Status    string          `json:"status"`
	Legs      []DeliveryLeg   `json:"legs"`
	Tracking  []TrackingEvent `json:"tracking"`
}

// DeliveryLeg is one custody segment of a delivery.
type DeliveryLeg struct {
	HolderID    string     `json:"holder_id"`
	FromAddress string     `json:"from_address"`
	ToAddress   string     `json:"to_address"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// TrackingEvent is one recorded state transition.
type TrackingEvent struct {
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BillingPeriodSummary is the short form of a billing period.
type BillingPeriodSummary struct {
	ID      string    `json:"id"`
	PartyID string    `json:"party_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Status  string    `json:"status"`
}

// BillingPeriod is the full read model of a billing period.
type BillingPeriod struct {
	BillingPeriodSummary
	InvoiceRef string        `json:"invoice_ref,omitempty"`
	Total      Amount        `json:"total"`
	Entries    []LedgerEntry `json:"entries"`
}

// LedgerEntry is one settlement movement attached to a period.
type LedgerEntry struct {
	ID         string    `json:"id"`
	DeliveryID string    `json:"delivery_id"`
	Amount     Amount    `json:"amount"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

func deliveryFromProjection(projection queries.GetDeliveryQueryResponse) Delivery {
	legs := make([]DeliveryLeg, len(projection.Legs))
	for i, leg := range projection.Legs {
		legs[i] = DeliveryLeg{
			HolderID:    leg.HolderID.String(),
			FromAddress: leg.FromAddress,
			ToAddress:   leg.ToAddress,
			StartedAt:   leg.StartedAt,
			EndedAt:     leg.EndedAt,
		}
	}

	tracking := make([]TrackingEvent, len(projection.Tracking))
	for i, event := range projection.Tracking {
		tracking[i] = TrackingEvent{
			Status:     event.Status,
			Note:       event.Note,
			OccurredAt: event.OccurredAt,
		}
	}

	return Delivery{
		ID:        projection.ID.String(),
		RequestID: projection.RequestID.String(),
		HolderID:  projection.HolderID.String(),
		Status:    projection.Status,
		Legs:      legs,
		Tracking:  tracking,
	}
}

func billingPeriodFromProjection(projection queries.GetBillingPeriodQueryResponse) BillingPeriod {
	entries := make([]LedgerEntry, len(projection.Entries))
	for i, entry := range projection.Entries {
		entries[i] = LedgerEntry{
			ID:         entry.ID.String(),
			DeliveryID: entry.DeliveryID.String(),
			Amount:     Amount{Cents: entry.Amount.Cents(), Currency: entry.Amount.Currency()},
			Kind:       entry.Kind,
			CreatedAt:  entry.CreatedAt,
		}
	}

	return BillingPeriod{
		BillingPeriodSummary: BillingPeriodSummary{
			ID:      projection.ID.String(),
			PartyID: projection.PartyID.String(),
			Start:   projection.Start,
			End:     projection.End,
			Status:  projection.Status,
		},
		InvoiceRef: projection.InvoiceRef,
		Total:      Amount{Cents: projection.Total.Cents(), Currency: projection.Total.Currency()},
		Entries:    entries,
	}
}
