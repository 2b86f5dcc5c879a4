package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// AcceptOrderCommandHandler lets the assigned provider accept a pending or
// rescheduled order.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory, clock.System{})
//	cmd, _ := NewAcceptOrderCommand(orderID, provider, "req-7f3a")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, errs.ErrTransitionNotAllowed) when another request won
//	}
type AcceptOrderCommandHandler struct {
	transition orderTransition
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
	}
}

// Handle accepts the order. A retry with the same idempotency key succeeds
// without changing anything.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	_, _, err := h.transition.run(ctx, cmd.OrderCommand, order.AcceptedByProvider,
		func(_ UoW, o *order.Order) error {
			return o.Accept(cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
		}, nil)
	return err
}
