package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// RejectOrderCommandHandler lets the assigned provider decline a pending order.
type RejectOrderCommandHandler struct {
	transition orderTransition
}

func NewRejectOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
	}
}

func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	_, _, err := h.transition.run(ctx, cmd.OrderCommand, order.Rejected,
		func(_ UoW, o *order.Order) error {
			return o.Reject(cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
		}, nil)
	return err
}
