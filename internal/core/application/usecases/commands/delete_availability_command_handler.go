package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/services"
)

// DeleteAvailabilityCommandHandler removes one window of the calling agent
// unless an accepted delivery depends on it.
type DeleteAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	change     availabilityChange
}

func NewDeleteAvailabilityCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.DeliveryDispatcher,
) DeleteAvailabilityCommandHandler {
	return DeleteAvailabilityCommandHandler{
		uowFactory: uowFactory,
		change:     availabilityChange{dispatcher: dispatcher},
	}
}

func (h *DeleteAvailabilityCommandHandler) Handle(ctx context.Context, cmd DeleteAvailabilityCommand) error {
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

	w, err := ownedWindow(ctx, uow, cmd.WindowID(), cmd.Actor())
	if err != nil {
		return err
	}

	before, err := h.change.lockAndLoad(ctx, uow, w.AgentID(), []time.Time{w.Date()})
	if err != nil {
		return err
	}
	if err = h.change.checkCoverage(ctx, uow, w.AgentID(), before, withoutWindow(before, w.ID())); err != nil {
		return err
	}

	if err = uow.AvailabilityRepository().Delete(ctx, w.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
