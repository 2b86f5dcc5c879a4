package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// RescheduleOrderCommandHandler moves an order to new slots. The order goes
// back to the provider for acceptance.
type RescheduleOrderCommandHandler struct {
	transition orderTransition
}

func NewRescheduleOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) RescheduleOrderCommandHandler {
	return RescheduleOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
	}
}

// Handle reschedules the order. Returns WindowClosedError within
// order.ChangeCutoff of the current pickup start.
func (h *RescheduleOrderCommandHandler) Handle(ctx context.Context, cmd RescheduleOrderCommand) error {
	_, _, err := h.transition.run(ctx, cmd.OrderCommand, order.Rescheduled,
		func(_ UoW, o *order.Order) error {
			return o.Reschedule(cmd.Pickup(), cmd.Delivery(), cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
		}, nil)
	return err
}
