package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrOrderCommandIsNotConstructed = errors.New("order command must be created via its constructor")

// OrderCommand carries what every order status change needs: the order, the
// acting user and the idempotency key of the request.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(orderID, actor, c.Request().Header.Get("Idempotency-Key"))
type OrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	actor          kernel.Actor
	idempotencyKey string

	guard guard.ConstructorGuard
}

func newOrderCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (OrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return OrderCommand{}, err
	}
	return OrderCommand{
		orderID:        orderID,
		actor:          actor,
		idempotencyKey: strings.TrimSpace(idempotencyKey),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c OrderCommand) Validate() error {
	return c.guard.Validate(ErrOrderCommandIsNotConstructed)
}

func (c OrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c OrderCommand) Actor() kernel.Actor {
	return c.actor
}

// IdempotencyKey identifies the request; retries reuse it.
func (c OrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// AcceptOrderCommand: the provider accepts a pending order.
type AcceptOrderCommand struct{ OrderCommand }

func NewAcceptOrderCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (AcceptOrderCommand, error) {
	c, err := newOrderCommand(orderID, actor, idempotencyKey)
	return AcceptOrderCommand{c}, err
}

// RejectOrderCommand: the provider declines a pending order.
type RejectOrderCommand struct{ OrderCommand }

func NewRejectOrderCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (RejectOrderCommand, error) {
	c, err := newOrderCommand(orderID, actor, idempotencyKey)
	return RejectOrderCommand{c}, err
}

// CancelOrderCommand: the customer withdraws the order before pickup.
type CancelOrderCommand struct{ OrderCommand }

func NewCancelOrderCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (CancelOrderCommand, error) {
	c, err := newOrderCommand(orderID, actor, idempotencyKey)
	return CancelOrderCommand{c}, err
}

// MarkInCleaningCommand: the provider started processing.
type MarkInCleaningCommand struct{ OrderCommand }

func NewMarkInCleaningCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (MarkInCleaningCommand, error) {
	c, err := newOrderCommand(orderID, actor, idempotencyKey)
	return MarkInCleaningCommand{c}, err
}

// MarkReadyForDeliveryCommand: the provider finished cleaning.
type MarkReadyForDeliveryCommand struct{ OrderCommand }

func NewMarkReadyForDeliveryCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (MarkReadyForDeliveryCommand, error) {
	c, err := newOrderCommand(orderID, actor, idempotencyKey)
	return MarkReadyForDeliveryCommand{c}, err
}

// AcceptDeliveryCommand: a delivery agent takes a ready order.
type AcceptDeliveryCommand struct{ OrderCommand }

func NewAcceptDeliveryCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (AcceptDeliveryCommand, error) {
	c, err := newOrderCommand(orderID, actor, idempotencyKey)
	return AcceptDeliveryCommand{c}, err
}

// DeclineDeliveryCommand: a delivery agent turns a ready order down.
type DeclineDeliveryCommand struct{ OrderCommand }

func NewDeclineDeliveryCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey string) (DeclineDeliveryCommand, error) {
	c, err := newOrderCommand(orderID, actor, idempotencyKey)
	return DeclineDeliveryCommand{c}, err
}
