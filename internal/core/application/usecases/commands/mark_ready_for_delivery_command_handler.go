package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/ports"
)

// MarkReadyForDeliveryCommandHandler finishes cleaning: the bill is invoiced
// and a HANDOVER code is issued to the provider in the same transaction.
type MarkReadyForDeliveryCommandHandler struct {
	transition orderTransition
	issuer     otpIssuer
}

func NewMarkReadyForDeliveryCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	generator ports.OtpCodeGenerator,
	sender ports.OtpSender,
	logger *slog.Logger,
) MarkReadyForDeliveryCommandHandler {
	return MarkReadyForDeliveryCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
		issuer:     otpIssuer{generator: generator, sender: sender, logger: logger},
	}
}

// Handle moves the order to ReadyForDelivery and sends the HANDOVER code
// after commit. Retries send nothing.
func (h *MarkReadyForDeliveryCommandHandler) Handle(ctx context.Context, cmd MarkReadyForDeliveryCommand) error {
	var notification ports.OtpNotification

	_, retried, err := h.transition.run(ctx, cmd.OrderCommand, order.ReadyForDelivery,
		func(_ UoW, o *order.Order) error {
			return o.MarkReadyForDelivery(cmd.Actor(), cmd.IdempotencyKey(), h.transition.clock.Now())
		},
		func(uow UoW, o *order.Order) error {
			n, issueErr := h.issuer.issue(ctx, uow, o, otp.Handover, h.transition.clock.Now())
			notification = n
			return issueErr
		})
	if err != nil || retried {
		return err
	}

	h.issuer.send(ctx, notification)
	return nil
}
