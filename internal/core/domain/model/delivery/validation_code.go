package delivery

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// codeLength is the number of characters in a validation code.
	codeLength = 6

	// codeAlphabet excludes visually ambiguous glyphs (0/O, 1/I/L) so the
	// recipient can read the code back over the phone without confusion.
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

	// DefaultCodeTTL is how long a validation code stays usable.
	DefaultCodeTTL = 24 * time.Hour
)

// ErrValidationCodeIsNotConstructed is returned when using an improperly
// initialized ValidationCode.
var ErrValidationCodeIsNotConstructed = errors.New(
	"ValidationCode must be created via NewValidationCode constructor")

// ValidationCode is the single-use secret proving physical receipt at the
// final drop point. It is bound to one delivery and to the leg that was open
// when it was issued; confirmation on any other leg is refused.
type ValidationCode struct {
	code      string
	expiresAt time.Time
	legIndex  int

	guard guard.ConstructorGuard
}

// NewValidationCode generates a fresh code valid for the given TTL, bound to
// the custody leg at legIndex. The code is drawn from a restricted alphabet
// using a cryptographic random source.
func NewValidationCode(issuedAt time.Time, ttl time.Duration, legIndex int) (*ValidationCode, error) {
	if issuedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("issuedAt")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidError("ttl")
	}
	if legIndex < 0 {
		return nil, errs.NewValueIsInvalidError("legIndex")
	}

	code, err := randomCode()
	if err != nil {
		return nil, err
	}

	return &ValidationCode{
		code:      code,
		expiresAt: issuedAt.Add(ttl),
		legIndex:  legIndex,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreValidationCode reconstructs a ValidationCode from persistence.
func RestoreValidationCode(code string, expiresAt time.Time, legIndex int) (*ValidationCode, error) {
	if len(code) != codeLength {
		return nil, errs.NewValueIsInvalidError("code")
	}
	if expiresAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("expiresAt")
	}
	if legIndex < 0 {
		return nil, errs.NewValueIsInvalidError("legIndex")
	}

	return &ValidationCode{
		code:      code,
		expiresAt: expiresAt,
		legIndex:  legIndex,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the instance was properly constructed.
func (v *ValidationCode) Validate() error {
	if v == nil {
		return ErrValidationCodeIsNotConstructed
	}
	return v.guard.Validate(ErrValidationCodeIsNotConstructed)
}

// Code returns the plaintext code for handing to the recipient.
func (v *ValidationCode) Code() string {
	return v.code
}

// ExpiresAt returns the moment the code stops being usable.
func (v *ValidationCode) ExpiresAt() time.Time {
	return v.expiresAt
}

// LegIndex returns the index of the custody leg the code was issued on.
func (v *ValidationCode) LegIndex() int {
	return v.legIndex
}

// IsExpired reports whether the code is no longer usable at the given time.
func (v *ValidationCode) IsExpired(at time.Time) bool {
	return !at.Before(v.expiresAt)
}

// Matches compares a submitted code against the stored one in constant time.
func (v *ValidationCode) Matches(submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(v.code), []byte(submitted)) == 1
}

// randomCode draws codeLength characters from codeAlphabet using crypto/rand.
func randomCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, codeLength)

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}

	return string(buf), nil
}
