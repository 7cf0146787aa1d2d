package ledger

import (
	"dispatch/internal/pkg/errs"
)

// Kind classifies a ledger entry.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// Earning is a courier's credit for a completed delivery leg.
	Earning

	// Commission is the platform provider's share of a completed delivery.
	Commission

	// Adjustment is an offsetting correction of an earlier entry. Originals
	// are never edited; corrections are always new entries.
	Adjustment

	// Payout marks funds leaving the platform toward the party.
	Payout
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown: "Unknown",
		Earning:     "Earning",
		Commission:  "Commission",
		Adjustment:  "Adjustment",
		Payout:      "Payout",
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if k < Earning || k > Payout {
		return errs.NewValueIsInvalidError("kind")
	}
	return nil
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}
