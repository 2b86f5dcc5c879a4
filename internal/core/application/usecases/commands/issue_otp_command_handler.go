package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// IssueOtpCommandHandler (re)issues a code of the requested kind and sends it
// to its holder. The new challenge replaces the order's previous one, so an
// earlier code stops working.
type IssueOtpCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	issuer     otpIssuer
}

func NewIssueOtpCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	generator ports.OtpCodeGenerator,
	sender ports.OtpSender,
	logger *slog.Logger,
) IssueOtpCommandHandler {
	return IssueOtpCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		issuer:     otpIssuer{generator: generator, sender: sender, logger: logger},
	}
}

// Handle issues the code.
//
// Returns:
//   - TransitionNotAllowedError when the order status does not admit the kind
//   - ActorNotAuthorizedError when the caller does not take part in the order
func (h *IssueOtpCommandHandler) Handle(ctx context.Context, cmd IssueOtpCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !cmd.Kind().IssuableIn(o.Status()) {
		return errs.NewTransitionNotAllowedError(o.Status().String(), cmd.Kind().String()+" otp")
	}
	if !o.IsParticipant(cmd.Actor()) {
		return cmd.Actor().NotAuthorized("request " + cmd.Kind().String() + " otp")
	}

	notification, err := h.issuer.issue(ctx, uow, o, cmd.Kind(), h.clock.Now())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.issuer.send(ctx, notification)
	return nil
}
