package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Role identifies the capacity in which an actor invokes an operation.
// The surrounding identity system authenticates the actor; commands only
// check ownership and role.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleRequester is the party who posted a delivery request.
	RoleRequester

	// RoleCourier is a registered courier.
	RoleCourier

	// RoleOperator is the platform operator (settlement and billing runs).
	RoleOperator
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "Unknown",
		RoleRequester: "Requester",
		RoleCourier:   "Courier",
		RoleOperator:  "Operator",
	}
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if r < RoleRequester || r > RoleOperator {
		return errs.NewValueIsInvalidError("role")
	}
	return nil
}

// String returns the human-readable name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// ErrActorIsNotConstructed is returned when using an improperly initialized Actor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor carries the acting party's identity and role into a command.
// Supplied by the surrounding identity/session layer on every operation.
type Actor struct { //nolint:recvcheck //using for validation
	id   kernel.UUID
	role Role

	guard guard.ConstructorGuard
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was created through the constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the acting party's identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the capacity the actor operates in.
func (a Actor) Role() Role {
	return a.role
}

// IsRequester reports whether the actor acts as a requester.
func (a Actor) IsRequester() bool {
	return a.role == RoleRequester
}

// IsCourier reports whether the actor acts as a courier.
func (a Actor) IsCourier() bool {
	return a.role == RoleCourier
}

// IsOperator reports whether the actor acts as the platform operator.
func (a Actor) IsOperator() bool {
	return a.role == RoleOperator
}
