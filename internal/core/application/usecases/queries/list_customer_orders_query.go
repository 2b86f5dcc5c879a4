package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery lists every order the calling customer placed.
type ListCustomerOrdersQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

// NewListCustomerOrdersQuery is open to customers only.
func NewListCustomerOrdersQuery(actor kernel.Actor) (ListCustomerOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	if actor.Role() != kernel.Customer {
		return ListCustomerOrdersQuery{}, actor.NotAuthorized("list order history")
	}
	return ListCustomerOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) Actor() kernel.Actor { return q.actor }
