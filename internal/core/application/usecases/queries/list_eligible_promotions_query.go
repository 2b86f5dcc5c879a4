package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/promotion"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListEligiblePromotionsQueryIsNotConstructed = errors.New(
	"ListEligiblePromotionsQuery must be created via NewListEligiblePromotionsQuery constructor",
)

// ListEligiblePromotionsQuery lists the promotions the customer could apply to an order now.
type ListEligiblePromotionsQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewListEligiblePromotionsQuery(orderID kernel.UUID, actor kernel.Actor) (ListEligiblePromotionsQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return ListEligiblePromotionsQuery{}, err
	}
	return ListEligiblePromotionsQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListEligiblePromotionsQuery) Validate() error {
	return q.guard.Validate(ErrListEligiblePromotionsQueryIsNotConstructed)
}

func (q ListEligiblePromotionsQuery) OrderID() kernel.UUID { return q.orderID }
func (q ListEligiblePromotionsQuery) Actor() kernel.Actor  { return q.actor }

// EligiblePromotion describes a promotion together with what it would do to the bill.
type EligiblePromotion struct {
	ID           kernel.UUID
	Code         string
	Description  string
	DiscountType promotion.DiscountType
	Value        decimal.Decimal
	MaxDiscount  *decimal.Decimal
	Discount     decimal.Decimal
	FinalAmount  decimal.Decimal
}
