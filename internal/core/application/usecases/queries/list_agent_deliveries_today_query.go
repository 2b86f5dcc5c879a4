package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrListAgentDeliveriesTodayQueryIsNotConstructed = errors.New(
	"ListAgentDeliveriesTodayQuery must be created via NewListAgentDeliveriesTodayQuery constructor",
)

// ListAgentDeliveriesTodayQuery lists the calling agent's deliveries scheduled for today.
type ListAgentDeliveriesTodayQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewListAgentDeliveriesTodayQuery(actor kernel.Actor) (ListAgentDeliveriesTodayQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListAgentDeliveriesTodayQuery{}, err
	}
	if actor.Role() != kernel.DeliveryAgent {
		return ListAgentDeliveriesTodayQuery{}, actor.NotAuthorized("list deliveries")
	}
	return ListAgentDeliveriesTodayQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAgentDeliveriesTodayQuery) Validate() error {
	return q.guard.Validate(ErrListAgentDeliveriesTodayQueryIsNotConstructed)
}

func (q ListAgentDeliveriesTodayQuery) Actor() kernel.Actor { return q.actor }
