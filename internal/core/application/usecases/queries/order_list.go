package queries

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderListItem is the row shape shared by the order lists of providers and agents.
type OrderListItem struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	ProviderID  kernel.UUID
	AgentID     *kernel.UUID
	Status      order.Status
	Pickup      kernel.TimeWindow
	Delivery    kernel.TimeWindow
	ItemCount   int
	FinalAmount decimal.Decimal
	CreatedAt   time.Time
}

const orderListColumns = `
	o.id, o.customer_id, o.provider_id, o.agent_id, o.status,
	o.pickup_start, o.pickup_end, o.delivery_start, o.delivery_end,
	(SELECT COALESCE(SUM(i.quantity), 0) FROM order_items i WHERE i.order_id = o.id),
	o.final_amount, o.created_at`

// listOrders runs a SELECT of orderListColumns and scans every row.
func listOrders(ctx context.Context, db *gorm.DB, sql string, values ...any) ([]OrderListItem, error) {
	rows, err := db.WithContext(ctx).Raw(sql, values...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderListItem, 0)
	for rows.Next() {
		var (
			item                       OrderListItem
			id, customerID, providerID uuid.UUID
			agentID                    *uuid.UUID
			status                     string
			pickupStart, pickupEnd     time.Time
			deliveryStart, deliveryEnd time.Time
		)
		err = rows.Scan(&id, &customerID, &providerID, &agentID, &status,
			&pickupStart, &pickupEnd, &deliveryStart, &deliveryEnd,
			&item.ItemCount, &item.FinalAmount, &item.CreatedAt)
		if err != nil {
			return nil, err
		}

		if item.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if item.CustomerID, err = toUUID(customerID); err != nil {
			return nil, err
		}
		if item.ProviderID, err = toUUID(providerID); err != nil {
			return nil, err
		}
		if item.AgentID, err = toOptionalUUID(agentID); err != nil {
			return nil, err
		}
		if item.Status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}
		if item.Pickup, err = kernel.NewTimeWindow(pickupStart, pickupEnd); err != nil {
			return nil, err
		}
		if item.Delivery, err = kernel.NewTimeWindow(deliveryStart, deliveryEnd); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
