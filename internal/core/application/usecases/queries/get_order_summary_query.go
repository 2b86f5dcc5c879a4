package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery reads the bill of an order for one of its participants.
type GetOrderSummaryQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderSummaryQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderSummaryQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderSummaryQuery{}, err
	}
	return GetOrderSummaryQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

func (q GetOrderSummaryQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderSummaryQuery) Actor() kernel.Actor  { return q.actor }

// OrderSummaryItem is one priced line of the bill.
type OrderSummaryItem struct {
	ItemID    kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// GetOrderSummaryQueryResponse is the bill of an order.
type GetOrderSummaryQueryResponse struct {
	ID             kernel.UUID
	Status         order.Status
	CustomerID     kernel.UUID
	ProviderID     kernel.UUID
	AgentID        *kernel.UUID
	Pickup         kernel.TimeWindow
	Delivery       kernel.TimeWindow
	Items          []OrderSummaryItem
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	PromotionCode  string
	TaxRate        decimal.Decimal
	Tax            decimal.Decimal
	DeliveryCharge decimal.Decimal
	FinalAmount    decimal.Decimal
	InvoiceNumber  string
	PaymentStatus  string
	CreatedAt      time.Time
}
