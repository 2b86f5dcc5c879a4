package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/ports"
)

// ConfirmHandoverCommandHandler records that the assigned agent received the
// cleaned clothes. The HANDOVER code is consumed and a DELIVERY code is issued
// to the customer.
type ConfirmHandoverCommandHandler struct {
	transition orderTransition
	issuer     otpIssuer
}

func NewConfirmHandoverCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	generator ports.OtpCodeGenerator,
	sender ports.OtpSender,
	logger *slog.Logger,
) ConfirmHandoverCommandHandler {
	return ConfirmHandoverCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
		issuer:     otpIssuer{generator: generator, sender: sender, logger: logger},
	}
}

func (h *ConfirmHandoverCommandHandler) Handle(ctx context.Context, cmd ConfirmHandoverCommand) error {
	var notification ports.OtpNotification

	_, retried, err := h.transition.run(ctx, cmd.OrderCommand, order.OutForDelivery,
		func(uow UoW, o *order.Order) error {
			return gate(ctx, uow, o, cmd.OtpCommand, otp.Handover, h.transition.clock.Now(), func() error {
				return o.ConfirmHandover(cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
			})
		},
		func(uow UoW, o *order.Order) error {
			n, issueErr := h.issuer.issue(ctx, uow, o, otp.Delivery, h.transition.clock.Now())
			notification = n
			return issueErr
		})
	if err != nil || retried {
		return err
	}

	h.issuer.send(ctx, notification)
	return nil
}
