package commands

import (
	"context"

	"laundry/internal/core/domain/model/otp"
	"laundry/internal/core/ports"
)

// PurgeOtpChallengesCommandHandler deletes challenges consumed or expired
// longer than otp.Retention ago.
type PurgeOtpChallengesCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewPurgeOtpChallengesCommandHandler(uowFactory UoWFactory, clock ports.Clock) PurgeOtpChallengesCommandHandler {
	return PurgeOtpChallengesCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the number of deleted challenges.
func (h *PurgeOtpChallengesCommandHandler) Handle(ctx context.Context) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OtpRepository().DeleteStale(ctx, h.clock.Now().Add(-otp.Retention))
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
