package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrAvailabilityIsNotConstructed indicates that the Availability was not
	// properly initialized through the NewAvailability constructor function.
	ErrAvailabilityIsNotConstructed = errors.New("Availability must be created via NewAvailability constructor")

	// ErrCapacityIsNotPositive is returned when the declared carrying capacity
	// is zero or negative.
	ErrCapacityIsNotPositive = errs.NewValueIsInvalidError("capacity")
)

// Availability is a courier's declaration of a planned route segment together
// with the time window and carrying capacity offered on it. The matching
// engine scores availabilities, not courier profiles: one courier can declare
// several segments per day with different vehicles.
//
// Key business rules:
//   - The segment endpoints must be distinct valid geo points
//   - The window must be a valid half-open interval
//   - Capacity is declared in grams and must be positive
//   - Refrigerated transport is opt-in per declaration
type Availability struct {
	id            kernel.UUID
	courierID     kernel.UUID
	from          kernel.GeoPoint
	to            kernel.GeoPoint
	window        kernel.TimeWindow
	capacityGrams int
	refrigerated  bool

	guard guard.ConstructorGuard
}

// NewAvailability creates a validated route-segment declaration for a courier.
//
// Parameters:
//   - id: Unique identifier of the declaration
//   - courierID: Owning courier
//   - from, to: Segment endpoints
//   - window: Time interval during which the courier runs the segment
//   - capacityGrams: Maximum parcel weight the courier carries on this run
//   - refrigerated: Whether refrigerated transport is offered
//
// Returns:
//   - *Availability: A fully initialized declaration
//   - error: Validation error if any parameter is invalid
func NewAvailability(
	id kernel.UUID,
	courierID kernel.UUID,
	from kernel.GeoPoint,
	to kernel.GeoPoint,
	window kernel.TimeWindow,
	capacityGrams int,
	refrigerated bool,
) (*Availability, error) {
	a := &Availability{
		refrigerated: refrigerated,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setCourierID(courierID),
		a.setSegment(from, to),
		a.setWindow(window),
		a.setCapacityGrams(capacityGrams),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks if the Availability was properly constructed.
// The zero value is invalid and will fail this validation.
func (a *Availability) Validate() error {
	if a == nil {
		return ErrAvailabilityIsNotConstructed
	}
	return a.guard.Validate(ErrAvailabilityIsNotConstructed)
}

// IsEqual compares two declarations by their unique identifiers.
func (a *Availability) IsEqual(other *Availability) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

// ID returns the declaration's unique identifier.
func (a *Availability) ID() kernel.UUID {
	return a.id
}

// CourierID returns the identifier of the declaring courier.
func (a *Availability) CourierID() kernel.UUID {
	return a.courierID
}

// From returns the segment's starting point.
func (a *Availability) From() kernel.GeoPoint {
	return a.from
}

// To returns the segment's end point.
func (a *Availability) To() kernel.GeoPoint {
	return a.to
}

// Window returns the time interval of the declared run.
func (a *Availability) Window() kernel.TimeWindow {
	return a.window
}

// CapacityGrams returns the maximum parcel weight in grams.
func (a *Availability) CapacityGrams() int {
	return a.capacityGrams
}

// Refrigerated reports whether refrigerated transport is offered.
func (a *Availability) Refrigerated() bool {
	return a.refrigerated
}

// CanCarry reports whether a parcel with the given weight and handling
// requirements fits this declaration.
func (a *Availability) CanCarry(weightGrams int, needsRefrigeration bool) bool {
	if weightGrams > a.capacityGrams {
		return false
	}
	if needsRefrigeration && !a.refrigerated {
		return false
	}
	return true
}

// SegmentLengthKm returns the great-circle length of the declared segment.
func (a *Availability) SegmentLengthKm() (float64, error) {
	return a.from.DistanceKm(a.to)
}

func (a *Availability) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Availability) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.courierID = id
	return nil
}

func (a *Availability) setSegment(from, to kernel.GeoPoint) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	same, err := from.IsEqual(to)
	if err != nil {
		return err
	}
	if same {
		return errs.NewValueIsInvalidError("segment endpoints must differ")
	}

	a.from = from
	a.to = to
	return nil
}

func (a *Availability) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	a.window = window
	return nil
}

func (a *Availability) setCapacityGrams(capacityGrams int) error {
	if capacityGrams <= 0 {
		return ErrCapacityIsNotPositive
	}
	a.capacityGrams = capacityGrams
	return nil
}
