package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/ports"
)

// MarkPickedUpCommandHandler records the pickup once the provider enters the
// PICKUP code the customer received.
type MarkPickedUpCommandHandler struct {
	transition orderTransition
}

func NewMarkPickedUpCommandHandler(uowFactory UoWFactory, clock ports.Clock) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
	}
}

// Handle verifies the code and moves the order to PickedUp.
//
// Returns otp.ErrOtpInvalid, otp.ErrOtpExpired or otp.ErrOtpAlreadyConsumed on a
// failed verification; the order is left untouched.
func (h *MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
	_, _, err := h.transition.run(ctx, cmd.OrderCommand, order.PickedUp,
		func(uow UoW, o *order.Order) error {
			return gate(ctx, uow, o, cmd.OtpCommand, otp.Pickup, h.transition.clock.Now(), func() error {
				return o.MarkPickedUp(cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
			})
		}, nil)
	return err
}
