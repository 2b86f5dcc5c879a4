package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// DeclineDeliveryCommandHandler records that an agent does not want a ready
// order. The order stays READY_FOR_DELIVERY for every other agent and drops
// out of the declining agent's available list.
type DeclineDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewDeclineDeliveryCommandHandler(uowFactory UoWFactory, clock ports.Clock) DeclineDeliveryCommandHandler {
	return DeclineDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle stores the decline. The agent must be one who could accept the
// order right now; declining it again succeeds without a change.
func (h *DeclineDeliveryCommandHandler) Handle(ctx context.Context, cmd DeclineDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.CheckTransition(order.AcceptedByAgent, cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.AddDecline(ctx, o.ID(), cmd.Actor().ID(), h.clock.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
