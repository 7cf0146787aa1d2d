package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrGetNextInvoiceSequenceQueryIsNotConstructed is returned when the query
// was not created via its constructor.
var ErrGetNextInvoiceSequenceQueryIsNotConstructed = errors.New(
	"GetNextInvoiceSequenceQuery must be created via NewGetNextInvoiceSequenceQuery constructor")

// GetNextInvoiceSequenceQuery retrieves the next free invoice sequence number
// for a billing month. The billing run starts numbering from it so that a
// retried or partial run continues the month's series instead of reissuing
// references already recorded on invoiced periods.
type GetNextInvoiceSequenceQuery struct {
	month time.Time

	guard guard.ConstructorGuard
}

// NewGetNextInvoiceSequenceQuery creates a query for the month containing the
// given period end.
func NewGetNextInvoiceSequenceQuery(month time.Time) (GetNextInvoiceSequenceQuery, error) {
	if month.IsZero() {
		return GetNextInvoiceSequenceQuery{}, errs.NewValueIsRequiredError("month")
	}

	return GetNextInvoiceSequenceQuery{
		month: month,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNextInvoiceSequenceQuery) Validate() error {
	return q.guard.Validate(ErrGetNextInvoiceSequenceQueryIsNotConstructed)
}

// Month returns the billing month the sequence is scoped to.
func (q GetNextInvoiceSequenceQuery) Month() time.Time {
	return q.month
}
