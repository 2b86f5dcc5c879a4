package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// SaveAvailabilityCommandHandler upserts an agent's availability plan for the
// days between today and the end of next week.
//
// Example:
//
//	cmd, _ := NewSaveAvailabilityCommand(agent, []AvailabilityEntry{
//	    {Date: monday, Start: 9 * time.Hour, End: 13 * time.Hour},
//	    {Date: tuesday, IsHoliday: true},
//	})
//	ids, err := handler.Handle(ctx, cmd)
type SaveAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	change     availabilityChange
	loc        *time.Location
}

func NewSaveAvailabilityCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	dispatcher services.DeliveryDispatcher,
	loc *time.Location,
) SaveAvailabilityCommandHandler {
	if loc == nil {
		loc = time.UTC
	}
	return SaveAvailabilityCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		change:     availabilityChange{dispatcher: dispatcher},
		loc:        loc,
	}
}

// Handle stores the entries and returns the window IDs in entry order.
//
// Returns:
//   - ValueIsOutOfRangeError for dates outside the planning horizon
//   - ConflictError when entries overlap each other or stored windows, or an
//     edit strands an accepted delivery
//   - ActorNotAuthorizedError for non-agents and windows of other agents
func (h *SaveAvailabilityCommandHandler) Handle(ctx context.Context, cmd SaveAvailabilityCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	agent := cmd.Actor()
	if agent.Role() != kernel.DeliveryAgent {
		return nil, agent.NotAuthorized("manage availability")
	}

	now := h.clock.Now()
	for _, e := range cmd.Entries() {
		if err := availability.CheckHorizon(e.Date, now, h.loc); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	incoming := make([]*availability.Window, 0, len(cmd.Entries()))
	edited := make(map[kernel.UUID]bool)
	dates := make([]time.Time, 0, len(cmd.Entries()))
	for _, e := range cmd.Entries() {
		dates = append(dates, e.Date)
		if e.ID == nil {
			w, err := availability.NewWindow(kernel.NewUUID(), agent.ID(), e.Date, e.IsHoliday, e.Start, e.End)
			if err != nil {
				return nil, err
			}
			incoming = append(incoming, w)
			continue
		}

		stored, err := ownedWindow(ctx, uow, *e.ID, agent)
		if err != nil {
			return nil, err
		}
		dates = append(dates, stored.Date())
		w, err := availability.NewWindow(stored.ID(), agent.ID(), e.Date, e.IsHoliday, e.Start, e.End)
		if err != nil {
			return nil, err
		}
		edited[w.ID()] = true
		incoming = append(incoming, w)
	}

	before, err := h.change.lockAndLoad(ctx, uow, agent.ID(), dates)
	if err != nil {
		return nil, err
	}
	after := availability.Merge(before, incoming)
	if err = availability.CheckOverlaps(after); err != nil {
		return nil, err
	}
	if len(edited) > 0 {
		if err = h.change.checkCoverage(ctx, uow, agent.ID(), before, after); err != nil {
			return nil, err
		}
	}

	repo := uow.AvailabilityRepository()
	ids := make([]kernel.UUID, 0, len(incoming))
	for _, w := range incoming {
		if edited[w.ID()] {
			err = repo.Update(ctx, w)
		} else {
			err = repo.Add(ctx, w)
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, w.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}
