package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultCurrency is the currency assumed when the surrounding system does not
// supply one explicitly.
const DefaultCurrency = "EUR"

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money represents a monetary amount held as integer cents plus an ISO-4217
// currency code. Amounts may be negative: ledger entries use the sign to
// distinguish credits from offsetting adjustments.
//
// Money is an immutable value object; arithmetic returns new instances.
type Money struct { //nolint:recvcheck //using for validation
	cents    int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value from cents and a currency code.
func NewMoney(cents int64, currency string) (Money, error) {
	if currency == "" {
		return Money{}, errs.NewValueIsRequiredError("currency")
	}

	return Money{
		cents:    cents,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Money value was properly constructed via NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Currency returns the ISO-4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

// Add returns the sum of the two amounts. Currencies must match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}

	return NewMoney(m.cents+other.cents, m.currency)
}

// Negate returns the amount with its sign flipped. Used to build offsetting
// adjustment entries without ever mutating an original.
func (m Money) Negate() (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(-m.cents, m.currency)
}

// Percent returns the given share of the amount expressed in basis points
// (1/100 of a percent), truncated toward zero.
func (m Money) Percent(basisPoints int64) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if basisPoints < 0 || basisPoints > 10000 {
		return Money{}, errs.NewValueIsOutOfRangeError("basisPoints", basisPoints, 0, 10000)
	}

	return NewMoney(m.cents*basisPoints/10000, m.currency)
}

// Split divides the amount into n shares. Shares are equal except the last,
// which absorbs the integer-division remainder so the shares always sum back
// to the original amount.
func (m Money) Split(n int) ([]Money, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, errs.NewValueIsInvalidError("split count")
	}

	base := m.cents / int64(n)
	remainder := m.cents - base*int64(n)

	shares := make([]Money, 0, n)
	for i := 0; i < n; i++ {
		cents := base
		if i == n-1 {
			cents += remainder
		}
		share, err := NewMoney(cents, m.currency)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}

	return shares, nil
}

// String returns a human-readable representation, e.g. "Money(1250 EUR)".
func (m Money) String() string {
	return fmt.Sprintf("Money(%d %s)", m.cents, m.currency)
}

func (m Money) assertSameCurrency(other Money) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := other.Validate(); err != nil {
		return err
	}
	if m.currency != other.currency {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%s does not match %s", other.currency, m.currency))
	}
	return nil
}
