package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrListAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"ListAvailableDeliveriesQuery must be created via NewListAvailableDeliveriesQuery constructor",
)

// ListAvailableDeliveriesQuery lists cleaned orders no agent has taken yet,
// leaving out the ones the calling agent declined.
type ListAvailableDeliveriesQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

// NewListAvailableDeliveriesQuery is open to delivery agents only.
func NewListAvailableDeliveriesQuery(actor kernel.Actor) (ListAvailableDeliveriesQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListAvailableDeliveriesQuery{}, err
	}
	if actor.Role() != kernel.DeliveryAgent {
		return ListAvailableDeliveriesQuery{}, actor.NotAuthorized("list available deliveries")
	}
	return ListAvailableDeliveriesQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableDeliveriesQueryIsNotConstructed)
}

func (q ListAvailableDeliveriesQuery) Actor() kernel.Actor { return q.actor }
