package queries

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// ListEligiblePromotionsQueryHandler evaluates running promotions against an order.
// Unlike the other queries it works on aggregates, because eligibility is a
// domain rule of PromotionEvaluator.
type ListEligiblePromotionsQueryHandler struct {
	orders     ports.OrderRepository
	promotions ports.PromotionRepository
	clock      ports.Clock
	evaluator  services.PromotionEvaluator
}

func NewListEligiblePromotionsQueryHandler(
	orders ports.OrderRepository,
	promotions ports.PromotionRepository,
	clock ports.Clock,
	evaluator services.PromotionEvaluator,
) ListEligiblePromotionsQueryHandler {
	return ListEligiblePromotionsQueryHandler{
		orders:     orders,
		promotions: promotions,
		clock:      clock,
		evaluator:  evaluator,
	}
}

// Handle returns an empty list when the order already carries a promotion.
// Only the customer who placed the order may ask.
func (h ListEligiblePromotionsQueryHandler) Handle(
	ctx context.Context,
	query ListEligiblePromotionsQuery,
) ([]EligiblePromotion, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	if !query.Actor().Is(kernel.Customer, o.CustomerID()) {
		return nil, query.Actor().NotAuthorized("list promotions")
	}

	now := h.clock.Now()
	running, err := h.promotions.ListValidAt(ctx, now)
	if err != nil {
		return nil, err
	}

	previous, err := h.orders.CountByCustomer(ctx, o.CustomerID(), o.ID())
	if err != nil {
		return nil, err
	}

	totals := o.Totals()
	eligible := h.evaluator.Eligible(o, running, previous == 0, now)
	result := make([]EligiblePromotion, 0, len(eligible))
	for _, p := range eligible {
		after := totals.WithDiscount(p.DiscountOn(totals.Subtotal))
		result = append(result, EligiblePromotion{
			ID:           p.ID(),
			Code:         p.Code(),
			Description:  p.Description(),
			DiscountType: p.DiscountType(),
			Value:        p.Value(),
			MaxDiscount:  p.MaxDiscount(),
			Discount:     after.Discount,
			FinalAmount:  after.FinalAmount,
		})
	}
	return result, nil
}
