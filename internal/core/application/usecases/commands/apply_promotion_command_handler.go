package commands

import (
	"context"

	"laundry/internal/core/domain/model/promotion"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// ApplyPromotionCommandHandler redeems a promotion on an order.
//
// Business rejections (expired, below minimum, already applied...) are
// returned as a Result with Applied false and leave the order untouched.
// Errors are reserved for unknown orders or promotions and unauthorized callers.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	if err == nil && !result.Applied {
//	    fmt.Println(result.Reason) // "minimum order value not reached"
//	}
type ApplyPromotionCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	evaluator  services.PromotionEvaluator
}

func NewApplyPromotionCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	evaluator services.PromotionEvaluator,
) ApplyPromotionCommandHandler {
	return ApplyPromotionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		evaluator:  evaluator,
	}
}

func (h *ApplyPromotionCommandHandler) Handle(ctx context.Context, cmd ApplyPromotionCommand) (promotion.Result, error) {
	if err := cmd.Validate(); err != nil {
		return promotion.Result{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return promotion.Result{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return promotion.Result{}, err
	}

	p, err := uow.PromotionRepository().Get(ctx, cmd.PromotionID())
	if err != nil {
		return promotion.Result{}, err
	}

	previous, err := orderRepo.CountByCustomer(ctx, o.CustomerID(), o.ID())
	if err != nil {
		return promotion.Result{}, err
	}

	result, err := h.evaluator.Apply(o, p, cmd.Actor(), previous == 0, h.clock.Now())
	if err != nil {
		return promotion.Result{}, err
	}
	if !result.Applied {
		return result, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return promotion.Result{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return promotion.Result{}, err
	}

	return result, nil
}
