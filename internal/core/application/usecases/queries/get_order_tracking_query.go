package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery reads the status history of an order.
type GetOrderTrackingQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderTrackingQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderTrackingQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

func (q GetOrderTrackingQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderTrackingQuery) Actor() kernel.Actor  { return q.actor }

// TrackingStep is one entry of the status history.
type TrackingStep struct {
	Status  order.Status
	At      time.Time
	ActorID kernel.UUID
}

// GetOrderTrackingQueryResponse lists the history oldest first; Status is the current status.
type GetOrderTrackingQueryResponse struct {
	OrderID kernel.UUID
	Status  order.Status
	Steps   []TrackingStep
}
