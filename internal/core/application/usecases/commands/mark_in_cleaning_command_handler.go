package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// MarkInCleaningCommandHandler records that the provider started processing.
type MarkInCleaningCommandHandler struct {
	transition orderTransition
}

func NewMarkInCleaningCommandHandler(uowFactory UoWFactory, clock ports.Clock) MarkInCleaningCommandHandler {
	return MarkInCleaningCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
	}
}

func (h *MarkInCleaningCommandHandler) Handle(ctx context.Context, cmd MarkInCleaningCommand) error {
	_, _, err := h.transition.run(ctx, cmd.OrderCommand, order.InCleaning,
		func(_ UoW, o *order.Order) error {
			return o.MarkInCleaning(cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
		}, nil)
	return err
}
