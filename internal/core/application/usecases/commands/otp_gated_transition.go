package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/pkg/errs"
)

// gate applies an OTP-confirmed transition: state and role are checked on
// the order first, so a code is only consumed by a request that can succeed.
//
// When the order already went past the gate, a correct code that was spent
// reports otp.ErrOtpAlreadyConsumed to a participant instead of the state error.
func gate(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd OtpCommand,
	kind otp.Kind,
	now time.Time,
	change func() error,
) error {
	if err := o.CheckTransition(kind.Gates(), cmd.Actor()); err != nil {
		if errors.Is(err, errs.ErrTransitionNotAllowed) && o.HasReached(kind.Gates()) && o.IsParticipant(cmd.Actor()) {
			return replayedOtp(ctx, uow, o, kind, cmd.Code(), now, err)
		}
		return err
	}
	if err := verifyOtp(ctx, uow, o, kind, cmd.Code(), now); err != nil {
		return err
	}
	return change()
}

// replayedOtp checks code against the stored challenge without consuming it.
// It returns otp.ErrOtpAlreadyConsumed for a spent code and stateErr otherwise.
func replayedOtp(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	kind otp.Kind,
	code string,
	now time.Time,
	stateErr error,
) error {
	challenge, err := uow.OtpRepository().Get(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return stateErr
	}
	if err != nil {
		return err
	}
	if !challenge.IsConsumed() {
		return stateErr
	}
	if errors.Is(challenge.Verify(kind, code, now), otp.ErrOtpAlreadyConsumed) {
		return otp.ErrOtpAlreadyConsumed
	}
	return stateErr
}
