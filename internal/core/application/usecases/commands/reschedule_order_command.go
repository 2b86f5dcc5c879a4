package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
)

// RescheduleOrderCommand: the customer moves the pickup slot and optionally
// the delivery slot.
type RescheduleOrderCommand struct {
	OrderCommand
	pickup   kernel.TimeWindow
	delivery *kernel.TimeWindow
}

func NewRescheduleOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	idempotencyKey string,
	pickup kernel.TimeWindow,
	delivery *kernel.TimeWindow,
) (RescheduleOrderCommand, error) {
	base, err := newOrderCommand(orderID, actor, idempotencyKey)

	var deliveryErr error
	if delivery != nil {
		deliveryErr = delivery.Validate()
	}
	if err = errors.Join(err, pickup.Validate(), deliveryErr); err != nil {
		return RescheduleOrderCommand{}, err
	}
	return RescheduleOrderCommand{OrderCommand: base, pickup: pickup, delivery: delivery}, nil
}

func (c RescheduleOrderCommand) Pickup() kernel.TimeWindow {
	return c.pickup
}

// Delivery returns the new delivery window, nil to derive it from the pickup.
func (c RescheduleOrderCommand) Delivery() *kernel.TimeWindow {
	return c.delivery
}
