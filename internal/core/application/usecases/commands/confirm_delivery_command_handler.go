package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// ConfirmDeliveryCommandHandler closes the order once the agent enters the
// DELIVERY code the customer received. The agent's payout entry is written in
// the same transaction.
type ConfirmDeliveryCommandHandler struct {
	transition orderTransition
	calculator services.PayoutCalculator
}

func NewConfirmDeliveryCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	calculator services.PayoutCalculator,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
		calculator: calculator,
	}
}

func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	_, _, err := h.transition.run(ctx, cmd.OrderCommand, order.Delivered,
		func(uow UoW, o *order.Order) error {
			return gate(ctx, uow, o, cmd.OtpCommand, otp.Delivery, h.transition.clock.Now(), func() error {
				return o.ConfirmDelivery(cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
			})
		},
		func(uow UoW, o *order.Order) error {
			entry, err := h.calculator.EntryFor(o, h.transition.clock.Now())
			if err != nil {
				return err
			}
			return uow.PayoutRepository().Add(ctx, entry)
		})
	return err
}
