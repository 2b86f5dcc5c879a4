package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// AcceptDeliveryCommandHandler lets a delivery agent take a ready order.
// The agent's days are locked while availability and other deliveries are
// checked, so an agent cannot be booked twice for the same slot by
// concurrent requests, nor lose the covering window meanwhile.
type AcceptDeliveryCommandHandler struct {
	transition orderTransition
	dispatcher services.DeliveryDispatcher
	loc        *time.Location
}

func NewAcceptDeliveryCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	dispatcher services.DeliveryDispatcher,
	loc *time.Location,
) AcceptDeliveryCommandHandler {
	if loc == nil {
		loc = time.UTC
	}
	return AcceptDeliveryCommandHandler{
		transition: orderTransition{uowFactory: uowFactory, clock: clock},
		dispatcher: dispatcher,
		loc:        loc,
	}
}

// Handle assigns the calling agent to the order.
//
// Returns ConflictError when none of the agent's windows covers the delivery
// slot or another delivery of the agent overlaps it.
func (h *AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) error {
	_, _, err := h.transition.run(ctx, cmd.OrderCommand, order.AcceptedByAgent,
		func(uow UoW, o *order.Order) error {
			if err := o.CheckTransition(order.AcceptedByAgent, cmd.Actor()); err != nil {
				return err
			}

			agentID := cmd.Actor().ID()
			slot := o.Delivery()
			from := availability.DateOf(slot.Start().In(h.loc))
			to := availability.DateOf(slot.End().In(h.loc))

			availabilityRepo := uow.AvailabilityRepository()
			if err := availabilityRepo.LockAgentDays(ctx, agentID, daysBetween(from, to)...); err != nil {
				return err
			}
			windows, err := availabilityRepo.ListByAgent(ctx, agentID, from, to)
			if err != nil {
				return err
			}
			deliveries, err := uow.OrderRepository().GetAgentDeliveries(ctx, agentID,
				order.AcceptedByAgent, order.OutForDelivery)
			if err != nil {
				return err
			}

			return h.dispatcher.Dispatch(o, cmd.Actor(), windows, deliveries,
				cmd.IdempotencyKey(), h.transition.clock.Now())
		}, nil)
	return err
}

// daysBetween lists the calendar days from..to inclusive.
func daysBetween(from, to time.Time) []time.Time {
	days := []time.Time{from}
	for d := from.AddDate(0, 0, 1); !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
