package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/payout"
	"laundry/internal/pkg/guard"
)

var ErrGetPayoutSummaryQueryIsNotConstructed = errors.New(
	"GetPayoutSummaryQuery must be created via NewGetPayoutSummaryQuery constructor",
)

// GetPayoutSummaryQuery totals the calling agent's payouts, overall or for a date range.
type GetPayoutSummaryQuery struct {
	actor  kernel.Actor
	filter payout.Filter

	guard guard.ConstructorGuard
}

func NewGetPayoutSummaryQuery(actor kernel.Actor, filter payout.Filter) (GetPayoutSummaryQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetPayoutSummaryQuery{}, err
	}
	if actor.Role() != kernel.DeliveryAgent {
		return GetPayoutSummaryQuery{}, actor.NotAuthorized("view payouts")
	}
	return GetPayoutSummaryQuery{actor: actor, filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPayoutSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetPayoutSummaryQueryIsNotConstructed)
}

func (q GetPayoutSummaryQuery) Actor() kernel.Actor   { return q.actor }
func (q GetPayoutSummaryQuery) Filter() payout.Filter { return q.filter }
