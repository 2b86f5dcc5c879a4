package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrListSavedAvailabilityQueryIsNotConstructed = errors.New(
	"ListSavedAvailabilityQuery must be created via NewListSavedAvailabilityQuery constructor",
)

// ListSavedAvailabilityQuery lists the calling agent's windows inside the planning horizon.
type ListSavedAvailabilityQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewListSavedAvailabilityQuery(actor kernel.Actor) (ListSavedAvailabilityQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListSavedAvailabilityQuery{}, err
	}
	if actor.Role() != kernel.DeliveryAgent {
		return ListSavedAvailabilityQuery{}, actor.NotAuthorized("list availability")
	}
	return ListSavedAvailabilityQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListSavedAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrListSavedAvailabilityQueryIsNotConstructed)
}

func (q ListSavedAvailabilityQuery) Actor() kernel.Actor { return q.actor }

// SavedAvailability is one stored window. Start and End are offsets from midnight.
type SavedAvailability struct {
	ID        kernel.UUID
	Date      time.Time
	IsHoliday bool
	Start     time.Duration
	End       time.Duration
}
