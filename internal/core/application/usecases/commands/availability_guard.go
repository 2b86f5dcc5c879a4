package commands

import (
	"context"
	"fmt"
	"slices"
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"
)

// availabilityChange carries what every availability write needs: the lock,
// the stored windows of the touched days and the coverage check.
type availabilityChange struct {
	dispatcher services.DeliveryDispatcher
}

// lockAndLoad locks every agent day from the earliest to the latest of dates
// and returns the windows stored on them. Days between touched dates are
// locked too, since the listing reads them.
func (a availabilityChange) lockAndLoad(
	ctx context.Context,
	uow UoW,
	agentID kernel.UUID,
	dates []time.Time,
) ([]*availability.Window, error) {
	days := distinctDays(dates)
	from, to := days[0], days[len(days)-1]
	repo := uow.AvailabilityRepository()
	if err := repo.LockAgentDays(ctx, agentID, daysBetween(from, to)...); err != nil {
		return nil, err
	}
	stored, err := repo.ListByAgent(ctx, agentID, from, to)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// checkCoverage returns a ConflictError when replacing before by after would
// strand one of the agent's accepted deliveries.
func (a availabilityChange) checkCoverage(
	ctx context.Context,
	uow UoW,
	agentID kernel.UUID,
	before, after []*availability.Window,
) error {
	accepted, err := uow.OrderRepository().GetAgentDeliveries(ctx, agentID, order.AcceptedByAgent)
	if err != nil {
		return err
	}
	if stranded := a.dispatcher.CoverageLost(before, after, accepted); stranded != nil {
		return errs.NewConflictErrorWithCause("availability",
			fmt.Errorf("accepted delivery %s would lose its covering window", stranded.ID()))
	}
	return nil
}

// ownedWindow loads a window and checks it belongs to the calling agent.
func ownedWindow(ctx context.Context, uow UoW, id kernel.UUID, by kernel.Actor) (*availability.Window, error) {
	if by.Role() != kernel.DeliveryAgent {
		return nil, by.NotAuthorized("manage availability")
	}
	w, err := uow.AvailabilityRepository().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !w.AgentID().IsEqual(by.ID()) {
		return nil, by.NotAuthorized("manage availability of another agent")
	}
	return w, nil
}

func distinctDays(dates []time.Time) []time.Time {
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := availability.DateOf(d)
		if !slices.ContainsFunc(days, day.Equal) {
			days = append(days, day)
		}
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return days
}

func withoutWindow(windows []*availability.Window, id kernel.UUID) []*availability.Window {
	return slices.DeleteFunc(slices.Clone(windows), func(w *availability.Window) bool {
		return w.ID().IsEqual(id)
	})
}
