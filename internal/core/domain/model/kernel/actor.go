package kernel

import (
	"errors"
	"fmt"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when validating a zero-value Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// Role is the marketplace role an authenticated caller acts in.
type Role int

const (
	UnknownRole Role = iota
	Customer
	ServiceProvider
	DeliveryAgent
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:     "UNKNOWN",
		Customer:        "CUSTOMER",
		ServiceProvider: "SERVICE_PROVIDER",
		DeliveryAgent:   "DELIVERY_AGENT",
	}
}

// RoleFromString parses the wire name of a role.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// String returns the wire name, e.g. "SERVICE_PROVIDER".
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// Validate rejects UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the authenticated caller of an operation: who (ID) and in which role.
// Identity is established by the gateway in front of this service; the core only
// checks that the actor fits the operation.
type Actor struct { //nolint:recvcheck //using for validation
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor validates and creates an actor.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// ID returns the actor's user identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the role the actor acts in.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor acts in role and is the user identified by id.
func (a Actor) Is(role Role, id UUID) bool {
	return a.role == role && a.id.IsEqual(id)
}

// Validate returns ErrActorIsNotConstructed for zero values.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// NotAuthorized builds the error returned when the actor may not perform action.
func (a Actor) NotAuthorized(action string) error {
	return errs.NewActorNotAuthorizedError(a.role.String(), action)
}
