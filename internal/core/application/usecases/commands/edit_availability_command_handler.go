package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// EditAvailabilityCommandHandler changes one window of the calling agent.
type EditAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	change     availabilityChange
	loc        *time.Location
}

func NewEditAvailabilityCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	dispatcher services.DeliveryDispatcher,
	loc *time.Location,
) EditAvailabilityCommandHandler {
	if loc == nil {
		loc = time.UTC
	}
	return EditAvailabilityCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		change:     availabilityChange{dispatcher: dispatcher},
		loc:        loc,
	}
}

// Handle applies the edit. Returns ConflictError when the new times overlap
// another window or no longer cover an accepted delivery.
func (h *EditAvailabilityCommandHandler) Handle(ctx context.Context, cmd EditAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := availability.CheckHorizon(cmd.Date(), h.clock.Now(), h.loc); err != nil {
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

	edited, err := availability.NewWindow(w.ID(), w.AgentID(), cmd.Date(), cmd.IsHoliday(), cmd.Start(), cmd.End())
	if err != nil {
		return err
	}

	before, err := h.change.lockAndLoad(ctx, uow, w.AgentID(), []time.Time{w.Date(), cmd.Date()})
	if err != nil {
		return err
	}
	after := availability.Merge(before, []*availability.Window{edited})
	if err = availability.CheckOverlaps(after); err != nil {
		return err
	}
	if err = h.change.checkCoverage(ctx, uow, w.AgentID(), before, after); err != nil {
		return err
	}

	if err = w.Edit(cmd.Date(), cmd.IsHoliday(), cmd.Start(), cmd.End()); err != nil {
		return err
	}
	if err = uow.AvailabilityRepository().Update(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
