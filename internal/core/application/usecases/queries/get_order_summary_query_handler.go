package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler reads an order bill with its line items.
//
// Example:
//
//	handler := NewGetOrderSummaryQueryHandler(db)
//	query, _ := NewGetOrderSummaryQuery(orderID, customer)
//	summary, err := handler.Handle(ctx, query)
type GetOrderSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderSummaryQueryHandler(db *gorm.DB) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for unknown orders and ActorNotAuthorizedError
// for actors that do not take part in the order.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	var (
		resp                       GetOrderSummaryQueryResponse
		id                         uuid.UUID
		parties                    orderParties
		status                     string
		pickupStart, pickupEnd     time.Time
		deliveryStart, deliveryEnd time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id, customer_id, provider_id, agent_id, status,
			pickup_start, pickup_end, delivery_start, delivery_end,
			subtotal, discount, promotion_code, tax_rate, tax, delivery_charge, final_amount,
			invoice_number, payment_status, created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	err := row.Scan(
		&id, &parties.customerID, &parties.providerID, &parties.agentID, &status,
		&pickupStart, &pickupEnd, &deliveryStart, &deliveryEnd,
		&resp.Subtotal, &resp.Discount, &resp.PromotionCode, &resp.TaxRate, &resp.Tax,
		&resp.DeliveryCharge, &resp.FinalAmount,
		&resp.InvoiceNumber, &resp.PaymentStatus, &resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderSummaryQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderSummaryQueryResponse{}, err
	}

	if !parties.admits(query.Actor()) {
		return GetOrderSummaryQueryResponse{}, query.Actor().NotAuthorized("view order")
	}

	if resp.ID, err = toUUID(id); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if resp.CustomerID, err = toUUID(parties.customerID); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if resp.ProviderID, err = toUUID(parties.providerID); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if resp.AgentID, err = toOptionalUUID(parties.agentID); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if resp.Status, err = order.StatusFromString(status); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if resp.Pickup, err = kernel.NewTimeWindow(pickupStart, pickupEnd); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}
	if resp.Delivery, err = kernel.NewTimeWindow(deliveryStart, deliveryEnd); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	if resp.Items, err = h.items(ctx, id); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderSummaryQueryHandler) items(ctx context.Context, orderID uuid.UUID) ([]OrderSummaryItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT item_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderSummaryItem, 0)
	for rows.Next() {
		var item OrderSummaryItem
		var itemID uuid.UUID
		if err = rows.Scan(&itemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		if item.ItemID, err = toUUID(itemID); err != nil {
			return nil, err
		}
		item.Total = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	return items, rows.Err()
}
