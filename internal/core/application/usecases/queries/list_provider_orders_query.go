package queries

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrListProviderOrdersQueryIsNotConstructed = errors.New(
	"ListProviderOrdersQuery must be created via NewListProviderOrdersQuery constructor",
)

// ProviderOrderGroup selects one tab of the provider's order board.
type ProviderOrderGroup string

const (
	// PendingGroup holds orders waiting for the provider's decision.
	PendingGroup ProviderOrderGroup = "pending"
	// ActiveGroup holds accepted orders that are not delivered yet.
	ActiveGroup ProviderOrderGroup = "active"
	// DeliveredGroup holds completed orders.
	DeliveredGroup ProviderOrderGroup = "delivered"
)

// Statuses returns the order statuses the group shows.
func (g ProviderOrderGroup) Statuses() []order.Status {
	switch g {
	case PendingGroup:
		return []order.Status{order.Pending, order.Rescheduled}
	case ActiveGroup:
		return []order.Status{
			order.AcceptedByProvider, order.PickedUp, order.InCleaning,
			order.ReadyForDelivery, order.AcceptedByAgent, order.OutForDelivery,
		}
	case DeliveredGroup:
		return []order.Status{order.Delivered}
	default:
		return nil
	}
}

// ListProviderOrdersQuery lists the calling provider's orders of one group.
type ListProviderOrdersQuery struct {
	actor kernel.Actor
	group ProviderOrderGroup

	guard guard.ConstructorGuard
}

// NewListProviderOrdersQuery defaults an empty group to pending.
func NewListProviderOrdersQuery(actor kernel.Actor, group string) (ListProviderOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListProviderOrdersQuery{}, err
	}
	if actor.Role() != kernel.ServiceProvider {
		return ListProviderOrdersQuery{}, actor.NotAuthorized("list provider orders")
	}

	g := ProviderOrderGroup(group)
	if group == "" {
		g = PendingGroup
	}
	if g.Statuses() == nil {
		return ListProviderOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("group",
			fmt.Errorf("%q is not pending, active or delivered", group))
	}

	return ListProviderOrdersQuery{actor: actor, group: g, guard: guard.NewConstructorGuard()}, nil
}

func (q ListProviderOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListProviderOrdersQueryIsNotConstructed)
}

func (q ListProviderOrdersQuery) Actor() kernel.Actor       { return q.actor }
func (q ListProviderOrdersQuery) Group() ProviderOrderGroup { return q.group }
