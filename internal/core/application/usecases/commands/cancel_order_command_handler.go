package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// CancelOrderCommandHandler lets the customer withdraw an order up to one hour
// before the pickup slot starts.
type CancelOrderCommandHandler struct {
	transition orderTransition
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
	}
}

// Handle cancels the order.
//
// Returns WindowClosedError when the cutoff has passed, TransitionNotAllowedError
// once the clothes were picked up.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	_, _, err := h.transition.run(ctx, cmd.OrderCommand, order.Cancelled,
		func(_ UoW, o *order.Order) error {
			return o.Cancel(cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
		}, nil)
	return err
}
