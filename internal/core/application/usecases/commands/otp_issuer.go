package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
)

// otpIssuer opens challenges inside a transaction and delivers the codes
// once the transaction committed.
type otpIssuer struct {
	generator ports.OtpCodeGenerator
	sender    ports.OtpSender
	logger    *slog.Logger
}

// issue stores a new challenge of kind for o, replacing any previous one.
// The returned notification must be sent only after commit.
func (i otpIssuer) issue(ctx context.Context, uow UoW, o *order.Order, kind otp.Kind, now time.Time) (ports.OtpNotification, error) {
	code, err := i.generator.Generate()
	if err != nil {
		return ports.OtpNotification{}, err
	}

	challenge, err := otp.Issue(o.ID(), kind, code, now)
	if err != nil {
		return ports.OtpNotification{}, err
	}

	if err = uow.OtpRepository().Save(ctx, challenge); err != nil {
		return ports.OtpNotification{}, err
	}

	recipientID, recipientRole := kind.Holder(o)
	return ports.OtpNotification{
		OrderID:       o.ID(),
		Kind:          kind.String(),
		Code:          code,
		RecipientID:   recipientID,
		RecipientRole: recipientRole,
		ExpiresAt:     challenge.ExpiresAt(),
	}, nil
}

// send delivers n. A failed delivery is logged only: the state change is
// committed and the holder can request a resend.
func (i otpIssuer) send(ctx context.Context, n ports.OtpNotification) {
	if err := i.sender.Send(ctx, n); err != nil {
		i.logger.WarnContext(ctx, "failed to deliver otp",
			"order_id", n.OrderID.String(),
			"kind", n.Kind,
			"error", err)
	}
}

// verify checks and consumes the order's challenge of kind.
func verifyOtp(ctx context.Context, uow UoW, o *order.Order, kind otp.Kind, code string, now time.Time) error {
	repo := uow.OtpRepository()
	challenge, err := repo.Get(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return otp.ErrOtpInvalid
	}
	if err != nil {
		return err
	}
	if err = challenge.Verify(kind, code, now); err != nil {
		return err
	}
	return repo.Save(ctx, challenge)
}
