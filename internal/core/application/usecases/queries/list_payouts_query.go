package queries

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListPayoutsQueryIsNotConstructed = errors.New(
	"ListPayoutsQuery must be created via NewListPayoutsQuery constructor",
)

// PayoutScope selects ledger entries by paid flag.
type PayoutScope string

const (
	PaidPayouts    PayoutScope = "paid"
	PendingPayouts PayoutScope = "pending"
	AllPayouts     PayoutScope = "all"
)

// ListPayoutsQuery lists the calling agent's ledger entries, newest first.
type ListPayoutsQuery struct {
	actor kernel.Actor
	scope PayoutScope

	guard guard.ConstructorGuard
}

func NewListPayoutsQuery(actor kernel.Actor, scope string) (ListPayoutsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListPayoutsQuery{}, err
	}
	if actor.Role() != kernel.DeliveryAgent {
		return ListPayoutsQuery{}, actor.NotAuthorized("view payouts")
	}
	switch s := PayoutScope(scope); s {
	case PaidPayouts, PendingPayouts, AllPayouts:
		return ListPayoutsQuery{actor: actor, scope: s, guard: guard.NewConstructorGuard()}, nil
	default:
		return ListPayoutsQuery{}, errs.NewValueIsInvalidErrorWithCause("scope",
			fmt.Errorf("%q is not paid, pending or all", scope))
	}
}

func (q ListPayoutsQuery) Validate() error {
	return q.guard.Validate(ErrListPayoutsQueryIsNotConstructed)
}

func (q ListPayoutsQuery) Actor() kernel.Actor { return q.actor }
func (q ListPayoutsQuery) Scope() PayoutScope  { return q.scope }

// PayoutListItem is one ledger entry.
type PayoutListItem struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	DeliveryEarning decimal.Decimal
	Charge          decimal.Decimal
	FinalAmount     decimal.Decimal
	IsPaid          bool
	PaidAt          *time.Time
	CreatedAt       time.Time
}
