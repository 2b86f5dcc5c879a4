package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrApplyPromotionCommandIsNotConstructed = errors.New(
	"ApplyPromotionCommand must be created via NewApplyPromotionCommand constructor",
)

// ApplyPromotionCommand: the customer redeems a promotion on an order.
type ApplyPromotionCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	promotionID kernel.UUID
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewApplyPromotionCommand(orderID, promotionID kernel.UUID, actor kernel.Actor) (ApplyPromotionCommand, error) {
	if err := errors.Join(orderID.Validate(), promotionID.Validate(), actor.Validate()); err != nil {
		return ApplyPromotionCommand{}, err
	}
	return ApplyPromotionCommand{
		orderID:     orderID,
		promotionID: promotionID,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyPromotionCommand) Validate() error {
	return c.guard.Validate(ErrApplyPromotionCommandIsNotConstructed)
}

func (c ApplyPromotionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApplyPromotionCommand) PromotionID() kernel.UUID {
	return c.promotionID
}

func (c ApplyPromotionCommand) Actor() kernel.Actor {
	return c.actor
}
