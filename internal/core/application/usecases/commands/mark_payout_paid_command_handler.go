package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// MarkPayoutPaidCommandHandler flips a payout entry to paid. It is the only
// writer of the paid flag; marking a paid entry again changes nothing.
type MarkPayoutPaidCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewMarkPayoutPaidCommandHandler(uowFactory UoWFactory, clock ports.Clock) MarkPayoutPaidCommandHandler {
	return MarkPayoutPaidCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *MarkPayoutPaidCommandHandler) Handle(ctx context.Context, cmd MarkPayoutPaidCommand) error {
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

	payoutRepo := uow.PayoutRepository()
	entry, err := payoutRepo.Get(ctx, cmd.EntryID())
	if err != nil {
		return err
	}

	if !entry.MarkPaid(h.clock.Now()) {
		return nil
	}

	if err = payoutRepo.MarkPaid(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
