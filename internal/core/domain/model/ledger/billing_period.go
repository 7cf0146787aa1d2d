package ledger

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// PeriodStatus represents the lifecycle state of a billing period.
//
// State transitions:
//
//	PeriodOpen ──> PeriodClosed ──> PeriodInvoiced
//
// A period is closed exactly once; invoicing requires a closed period.
type PeriodStatus int

const (
	// PeriodUnknown represents an invalid or undefined status.
	PeriodUnknown PeriodStatus = iota

	// PeriodOpen means the period is accumulating settled entries.
	PeriodOpen

	// PeriodClosed means the period's entry set is frozen and the aggregate
	// is ready for invoice generation.
	PeriodClosed

	// PeriodInvoiced means an invoice reference has been issued; the
	// attached entries no longer count toward the party's open balance.
	PeriodInvoiced
)

func getPeriodStatusStrings() map[PeriodStatus]string {
	return map[PeriodStatus]string{
		PeriodUnknown:  "Unknown",
		PeriodOpen:     "Open",
		PeriodClosed:   "Closed",
		PeriodInvoiced: "Invoiced",
	}
}

// Validate checks if the PeriodStatus value is valid.
func (s PeriodStatus) Validate() error {
	if s < PeriodOpen || s > PeriodInvoiced {
		return errs.NewValueIsInvalidError("period status")
	}
	return nil
}

// String returns the human-readable name of the status.
func (s PeriodStatus) String() string {
	if str, ok := getPeriodStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Domain errors for billing periods.
var (
	// ErrBillingPeriodIsNotConstructed is returned when using an improperly
	// initialized BillingPeriod.
	ErrBillingPeriodIsNotConstructed = errors.New(
		"BillingPeriod must be created via NewBillingPeriod constructor")

	// ErrInvoiceRefIsRequired is returned when marking a period invoiced
	// without an invoice reference.
	ErrInvoiceRefIsRequired = errs.NewValueIsRequiredError("invoice reference")
)

// BillingPeriod is a bounded window of settled ledger activity for one
// party. At most one open period may exist per party; the uniqueness is
// enforced at closing time by the settlement engine.
type BillingPeriod struct {
	id         kernel.UUID
	partyID    kernel.UUID
	start      time.Time
	end        time.Time
	status     PeriodStatus
	invoiceRef string

	guard guard.ConstructorGuard
}

// NewBillingPeriod opens a billing period for a party.
func NewBillingPeriod(
	id kernel.UUID,
	partyID kernel.UUID,
	start time.Time,
	end time.Time,
) (*BillingPeriod, error) {
	p := &BillingPeriod{
		status: PeriodOpen,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setPartyID(partyID),
		p.setBounds(start, end),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreBillingPeriod reconstructs a BillingPeriod from persistence.
func RestoreBillingPeriod(
	id kernel.UUID,
	partyID kernel.UUID,
	start time.Time,
	end time.Time,
	status PeriodStatus,
	invoiceRef string,
) (*BillingPeriod, error) {
	p, err := NewBillingPeriod(id, partyID, start, end)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	p.status = status
	p.invoiceRef = invoiceRef
	return p, nil
}

// Validate ensures the instance was properly constructed.
func (p *BillingPeriod) Validate() error {
	if p == nil {
		return ErrBillingPeriodIsNotConstructed
	}
	return p.guard.Validate(ErrBillingPeriodIsNotConstructed)
}

// IsEqual compares two periods by their unique identifiers.
func (p *BillingPeriod) IsEqual(other *BillingPeriod) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the period's unique identifier.
func (p *BillingPeriod) ID() kernel.UUID {
	return p.id
}

// PartyID returns the party the period belongs to.
func (p *BillingPeriod) PartyID() kernel.UUID {
	return p.partyID
}

// Start returns the inclusive start of the period.
func (p *BillingPeriod) Start() time.Time {
	return p.start
}

// End returns the exclusive end of the period.
func (p *BillingPeriod) End() time.Time {
	return p.end
}

// Status returns the current lifecycle status.
func (p *BillingPeriod) Status() PeriodStatus {
	return p.status
}

// InvoiceRef returns the generated invoice reference, or "" before invoicing.
func (p *BillingPeriod) InvoiceRef() string {
	return p.invoiceRef
}

// IsOpen reports whether the period is still accumulating entries.
func (p *BillingPeriod) IsOpen() bool {
	return p.status == PeriodOpen
}

// Close freezes the period's entry set. Valid only while open.
func (p *BillingPeriod) Close() error {
	if p.status != PeriodOpen {
		return errs.NewInvalidStateError(
			"billing period", PeriodOpen.String(), p.status.String())
	}

	p.status = PeriodClosed
	return nil
}

// MarkInvoiced records the issued invoice reference. Valid only when closed.
func (p *BillingPeriod) MarkInvoiced(invoiceRef string) error {
	if invoiceRef == "" {
		return ErrInvoiceRefIsRequired
	}
	if p.status != PeriodClosed {
		return errs.NewInvalidStateError(
			"billing period", PeriodClosed.String(), p.status.String())
	}

	p.status = PeriodInvoiced
	p.invoiceRef = invoiceRef
	return nil
}

// InvoiceRef builds an invoice reference for a period ending in the given
// month, like INV-202506-0042.
func InvoiceRef(periodEnd time.Time, sequence int) string {
	return fmt.Sprintf("INV-%s-%04d", periodEnd.Format("200601"), sequence)
}

func (p *BillingPeriod) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *BillingPeriod) setPartyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.partyID = id
	return nil
}

func (p *BillingPeriod) setBounds(start, end time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("start")
	}
	if end.IsZero() {
		return errs.NewValueIsRequiredError("end")
	}
	if !start.Before(end) {
		return errs.NewValueIsInvalidError("period bounds")
	}

	p.start = start
	p.end = end
	return nil
}
