package services

import (
	"fmt"
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// DeliveryDispatcher is a domain service that hands a ready order to the
// delivery agent who asked for it, provided the agent can actually make it.
//
// Business rules:
//   - the order must be ReadyForDelivery and the caller a delivery agent
//   - one of the agent's working windows covers the whole delivery slot
//   - the agent holds no other accepted or outgoing delivery with an overlapping slot
//
// Example usage:
//
//	dispatcher := services.NewDeliveryDispatcher(time.UTC)
//	err := dispatcher.Dispatch(o, agent, windows, agentDeliveries, key, now)
//	if errors.Is(err, errs.ErrConflict) {
//	    // agent is not available or already busy
//	}
type DeliveryDispatcher struct {
	loc *time.Location
}

// NewDeliveryDispatcher creates a dispatcher evaluating availability windows in loc.
func NewDeliveryDispatcher(loc *time.Location) DeliveryDispatcher {
	if loc == nil {
		loc = time.UTC
	}
	return DeliveryDispatcher{loc: loc}
}

// Dispatch assigns o to agent.
//
// Parameters:
//   - o: the order to deliver
//   - agent: the delivery agent accepting it
//   - windows: the agent's availability windows around the delivery date
//   - agentDeliveries: other orders the agent holds in AcceptedByAgent or OutForDelivery
//   - idempotencyKey, now: recorded on the history entry
//
// Returns:
//   - TransitionNotAllowedError or ActorNotAuthorizedError from the order
//   - ConflictError when the agent is not available or already busy
func (d DeliveryDispatcher) Dispatch(
	o *order.Order,
	agent kernel.Actor,
	windows []*availability.Window,
	agentDeliveries []*order.Order,
	idempotencyKey string,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.CheckTransition(order.AcceptedByAgent, agent); err != nil {
		return err
	}
	if err := d.CheckEligibility(o, agent.ID(), windows, agentDeliveries); err != nil {
		return err
	}
	return o.AcceptDelivery(agent, idempotencyKey, now)
}

// CheckEligibility reports a ConflictError when the agent cannot take o.
func (d DeliveryDispatcher) CheckEligibility(
	o *order.Order,
	agentID kernel.UUID,
	windows []*availability.Window,
	agentDeliveries []*order.Order,
) error {
	slot := o.Delivery()

	own := make([]*availability.Window, 0, len(windows))
	for _, w := range windows {
		if w.AgentID().IsEqual(agentID) {
			own = append(own, w)
		}
	}
	if !availability.AnyCovers(own, slot, d.loc) {
		return errs.NewConflictErrorWithCause("availability",
			fmt.Errorf("agent is not available for the whole delivery window %s", slot))
	}

	for _, other := range agentDeliveries {
		if other.IsEqual(o) {
			continue
		}
		if other.Status() != order.AcceptedByAgent && other.Status() != order.OutForDelivery {
			continue
		}
		if other.Delivery().Overlaps(slot) {
			return errs.NewConflictErrorWithCause("schedule",
				fmt.Errorf("order %s is already scheduled in an overlapping window", other.ID()))
		}
	}
	return nil
}

// CoverageLost reports whether removing or changing window would leave an
// accepted delivery of the agent without a covering window.
//
// Parameters:
//   - before: the agent's windows as stored
//   - after: the agent's windows once the edit or delete is applied
//   - accepted: the agent's orders in AcceptedByAgent
func (d DeliveryDispatcher) CoverageLost(before, after []*availability.Window, accepted []*order.Order) *order.Order {
	for _, o := range accepted {
		if o.Status() != order.AcceptedByAgent {
			continue
		}
		slot := o.Delivery()
		if availability.AnyCovers(before, slot, d.loc) && !availability.AnyCovers(after, slot, d.loc) {
			return o
		}
	}
	return nil
}
