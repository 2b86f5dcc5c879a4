// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is stored across three tables: the order row with its bill, the
// priced line items and the append-only status history.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The creation key index makes order creation idempotent per customer.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_creation_key,where:creation_key <> ''"`
	ProviderID uuid.UUID  `gorm:"type:uuid;not null;index"`
	AgentID    *uuid.UUID `gorm:"type:uuid;index"`

	PickupStart   time.Time `gorm:"not null"`
	PickupEnd     time.Time `gorm:"not null"`
	DeliveryStart time.Time `gorm:"not null"`
	DeliveryEnd   time.Time `gorm:"not null"`

	Status string `gorm:"type:varchar(32);not null;index"`

	PromotionID    *uuid.UUID      `gorm:"type:uuid"`
	PromotionCode  string          `gorm:"type:varchar(64)"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TaxRate        decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	Tax            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	FinalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	InvoiceNumber    string `gorm:"type:varchar(32)"`
	PaymentStatus    string `gorm:"type:varchar(16);not null"`
	PaymentReference string `gorm:"type:varchar(128)"`

	CreationKey string    `gorm:"type:varchar(128);not null;default:'';uniqueIndex:idx_orders_creation_key"`
	CreatedAt   time.Time `gorm:"not null"`
	Version     int       `gorm:"not null"`

	Items   []OrderItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a priced line item. Items never change after creation.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusEntryDTO is one row of the status history, keyed by its position.
type StatusEntryDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int       `gorm:"primaryKey"`
	Status         string    `gorm:"type:varchar(32);not null"`
	At             time.Time `gorm:"not null"`
	ActorID        uuid.UUID `gorm:"type:uuid;not null"`
	IdempotencyKey string    `gorm:"type:varchar(128);not null;default:''"`
}

func (StatusEntryDTO) TableName() string {
	return "order_status_history"
}

// DeclineDTO records a delivery agent turning an order down. The order
// stays available to every other agent.
type DeclineDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeclinedAt time.Time `gorm:"not null"`
}

func (DeclineDTO) TableName() string {
	return "order_declines"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	var agentID *uuid.UUID
	if a := o.AgentID(); a != nil {
		raw := a.Bytes()
		agentID = &raw
	}

	var promotionID *uuid.UUID
	var promotionCode string
	if p := o.Promotion(); p != nil {
		raw := p.PromotionID.Bytes()
		promotionID = &raw
		promotionCode = p.Code
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  i,
			ItemID:    item.ItemID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	history := historyFromDomain(o)
	totals := o.Totals()

	return OrderDTO{
		ID:               id,
		CustomerID:       o.CustomerID().Bytes(),
		ProviderID:       o.ProviderID().Bytes(),
		AgentID:          agentID,
		PickupStart:      o.Pickup().Start(),
		PickupEnd:        o.Pickup().End(),
		DeliveryStart:    o.Delivery().Start(),
		DeliveryEnd:      o.Delivery().End(),
		Status:           o.Status().String(),
		PromotionID:      promotionID,
		PromotionCode:    promotionCode,
		Subtotal:         totals.Subtotal,
		Discount:         totals.Discount,
		TaxRate:          totals.TaxRate,
		Tax:              totals.Tax,
		DeliveryCharge:   totals.DeliveryCharge,
		FinalAmount:      totals.FinalAmount,
		InvoiceNumber:    o.InvoiceNumber(),
		PaymentStatus:    o.PaymentStatus().String(),
		PaymentReference: o.PaymentReference(),
		CreationKey:      history[0].IdempotencyKey,
		CreatedAt:        o.CreatedAt(),
		Version:          o.Version(),
		Items:            items,
		History:          history,
	}
}

func historyFromDomain(o *order.Order) []StatusEntryDTO {
	id := o.ID().Bytes()
	entries := o.History()
	history := make([]StatusEntryDTO, 0, len(entries))
	for i, e := range entries {
		history = append(history, StatusEntryDTO{
			OrderID:        id,
			Seq:            i,
			Status:         e.Status.String(),
			At:             e.At,
			ActorID:        e.ActorID.Bytes(),
			IdempotencyKey: e.IdempotencyKey,
		})
	}
	return history
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		a, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &a
	}

	pickup, err := kernel.NewTimeWindow(dto.PickupStart, dto.PickupEnd)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewTimeWindow(dto.DeliveryStart, dto.DeliveryEnd)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewLineItem(itemID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.StatusEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		entryStatus, statusErr := order.StatusFromString(entryDTO.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		actorID, actorErr := kernel.UUIDFromBytes(entryDTO.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		history = append(history, order.StatusEntry{
			Status:         entryStatus,
			At:             entryDTO.At,
			ActorID:        actorID,
			IdempotencyKey: entryDTO.IdempotencyKey,
		})
	}

	var promotion *order.AppliedPromotion
	if dto.PromotionID != nil {
		promotionID, promoErr := kernel.UUIDFromBytes((*dto.PromotionID)[:])
		if promoErr != nil {
			return nil, promoErr
		}
		promotion = &order.AppliedPromotion{
			PromotionID: promotionID,
			Code:        dto.PromotionCode,
			Discount:    dto.Discount,
		}
	}

	paymentStatus := order.Unpaid
	if dto.PaymentStatus == order.Paid.String() {
		paymentStatus = order.Paid
	}

	return order.RestoreOrder(order.State{
		ID:         id,
		CustomerID: customerID,
		ProviderID: providerID,
		AgentID:    agentID,
		Items:      items,
		Pickup:     pickup,
		Delivery:   delivery,
		Status:     status,
		History:    history,
		Promotion:  promotion,
		Totals: order.Totals{
			Subtotal:       dto.Subtotal,
			Discount:       dto.Discount,
			TaxRate:        dto.TaxRate,
			Tax:            dto.Tax,
			DeliveryCharge: dto.DeliveryCharge,
			FinalAmount:    dto.FinalAmount,
		},
		InvoiceNumber:    dto.InvoiceNumber,
		PaymentStatus:    paymentStatus,
		PaymentReference: dto.PaymentReference,
		CreatedAt:        dto.CreatedAt,
		Version:          dto.Version,
	})
}
