package services

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/promotion"
)

// PromotionEvaluator decides whether a promotion applies to an order and
// applies it. Business rejections come back as a promotion.Result with
// Applied false; only broken inputs and authorization failures are errors.
type PromotionEvaluator struct{}

func NewPromotionEvaluator() PromotionEvaluator {
	return PromotionEvaluator{}
}

// Reason returns why p cannot be applied to o, or "" when it can.
// Order-level blockers (already applied, bill finalized, closed) come first.
func (PromotionEvaluator) Reason(o *order.Order, p *promotion.Promotion, isFirstOrder bool, now time.Time) string {
	if reason := o.PromotionBlocker(); reason != "" {
		return reason
	}
	return p.Check(promotion.Candidate{
		Subtotal:     o.Totals().Subtotal,
		ProviderID:   o.ProviderID(),
		IsFirstOrder: isFirstOrder,
		Now:          now,
	})
}

// Eligible filters promotions down to those applicable to o.
// It is empty once o carries a promotion.
func (e PromotionEvaluator) Eligible(o *order.Order, promotions []*promotion.Promotion, isFirstOrder bool, now time.Time) []*promotion.Promotion {
	eligible := make([]*promotion.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if e.Reason(o, p, isFirstOrder, now) == "" {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// Apply re-checks eligibility and redeems p on o.
//
// Example:
//
//	result, err := evaluator.Apply(o, p, customer, true, now)
//	// second call: result.Applied == false, result.Reason == "promotion already applied"
func (e PromotionEvaluator) Apply(
	o *order.Order,
	p *promotion.Promotion,
	by kernel.Actor,
	isFirstOrder bool,
	now time.Time,
) (promotion.Result, error) {
	if !by.Is(kernel.Customer, o.CustomerID()) {
		return promotion.Result{}, by.NotAuthorized("apply promotion")
	}

	totals := o.Totals()
	if reason := e.Reason(o, p, isFirstOrder, now); reason != "" {
		return promotion.Rejected(reason, totals.Discount, totals.FinalAmount), nil
	}

	err := o.ApplyPromotion(order.AppliedPromotion{
		PromotionID: p.ID(),
		Code:        p.Code(),
		Discount:    p.DiscountOn(totals.Subtotal),
	}, by)
	if err != nil {
		return promotion.Result{}, err
	}

	totals = o.Totals()
	return promotion.AppliedWith(totals.Discount, totals.FinalAmount), nil
}
