package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// DefaultRating is the reliability score assigned to newly registered couriers.
const DefaultRating = 0.5

// Courier represents a registered courier profile.
// It is an aggregate root holding the courier's identity and reliability
// rating. Operational capacity lives on the courier's Availability
// declarations, not on the profile: a courier may run several route
// segments with different vehicles on the same day.
//
// Business rules:
//   - Courier must have a valid UUID and a non-empty name
//   - Rating is a reliability score in [0, 1]; new couriers start at the
//     platform default and the score is recomputed from completed deliveries
type Courier struct {
	id     kernel.UUID
	name   string
	rating float64

	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier profile with the default rating.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//
// Returns:
//   - *Courier: A fully initialized courier profile
//   - error: Validation error if any parameter is invalid
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setRating(DefaultRating),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier profile from persistent storage,
// including its accumulated rating.
func RestoreCourier(id kernel.UUID, name string, rating float64) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setRating(rating),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// IsEqual compares two couriers for equality based on their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed using a constructor.
// The zero value of Courier is invalid and will fail this validation.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// Rating returns the courier's reliability score in [0, 1].
func (c *Courier) Rating() float64 {
	return c.rating
}

// UpdateRating replaces the courier's reliability score.
// The score is recomputed outside the aggregate from completed delivery
// outcomes; this method only enforces the [0, 1] range.
func (c *Courier) UpdateRating(rating float64) error {
	return c.setRating(rating)
}

// setID sets the courier's unique identifier with validation.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

// setName sets the courier's name with validation.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

// setRating sets the courier's rating with range validation.
func (c *Courier) setRating(rating float64) error {
	if rating < 0 || rating > 1 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 0.0, 1.0)
	}

	c.rating = rating
	return nil
}
