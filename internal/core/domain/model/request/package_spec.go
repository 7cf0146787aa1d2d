package request

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrPackageSpecIsNotConstructed is returned when attempting to use an
// improperly initialized PackageSpec.
var ErrPackageSpecIsNotConstructed = errs.NewValueIsRequiredError(
	"package spec must be created via NewPackageSpec constructor")

// PackageSpec describes the physical constraints of the parcel to deliver.
// It is an immutable value object owned by the delivery request; the matcher
// uses it as a hard filter against courier capacity.
type PackageSpec struct { //nolint:recvcheck //using for validation
	weightGrams  int
	fragile      bool
	refrigerated bool
	guard        guard.ConstructorGuard
}

// NewPackageSpec creates a PackageSpec. Weight must be positive.
func NewPackageSpec(weightGrams int, fragile, refrigerated bool) (PackageSpec, error) {
	if weightGrams <= 0 {
		return PackageSpec{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%d is not greater than 0", weightGrams))
	}

	return PackageSpec{
		weightGrams:  weightGrams,
		fragile:      fragile,
		refrigerated: refrigerated,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the PackageSpec was properly constructed.
func (p PackageSpec) Validate() error {
	return p.guard.Validate(ErrPackageSpecIsNotConstructed)
}

// WeightGrams returns the parcel weight in grams.
func (p PackageSpec) WeightGrams() int {
	return p.weightGrams
}

// Fragile reports whether the parcel needs careful handling.
func (p PackageSpec) Fragile() bool {
	return p.fragile
}

// Refrigerated reports whether the parcel requires a cold chain.
func (p PackageSpec) Refrigerated() bool {
	return p.refrigerated
}
