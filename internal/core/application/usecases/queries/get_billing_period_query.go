package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrGetBillingPeriodQueryIsNotConstructed is returned when the query was
// not created via its constructor.
var ErrGetBillingPeriodQueryIsNotConstructed = errors.New(
	"GetBillingPeriodQuery must be created via NewGetBillingPeriodQuery constructor")

// GetBillingPeriodQuery retrieves a billing period with its attached entries
// and total.
type GetBillingPeriodQuery struct {
	periodID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBillingPeriodQuery creates a query for one billing period.
func NewGetBillingPeriodQuery(periodID kernel.UUID) (GetBillingPeriodQuery, error) {
	if err := periodID.Validate(); err != nil {
		return GetBillingPeriodQuery{}, err
	}

	return GetBillingPeriodQuery{
		periodID: periodID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBillingPeriodQuery) Validate() error {
	return q.guard.Validate(ErrGetBillingPeriodQueryIsNotConstructed)
}

// PeriodID returns the period to project.
func (q GetBillingPeriodQuery) PeriodID() kernel.UUID { return q.periodID }

// GetBillingPeriodQueryResponse is the read model of one billing period.
type GetBillingPeriodQueryResponse struct {
	ID         kernel.UUID
	PartyID    kernel.UUID
	Start      time.Time
	End        time.Time
	Status     string
	InvoiceRef string
	Total      kernel.Money
	Entries    []PeriodEntryResponse
}

// PeriodEntryResponse is one settled movement inside a period.
type PeriodEntryResponse struct {
	ID         kernel.UUID
	DeliveryID kernel.UUID
	Amount     kernel.Money
	Kind       string
	CreatedAt  time.Time
}
