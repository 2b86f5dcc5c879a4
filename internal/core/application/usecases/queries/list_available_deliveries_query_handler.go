package queries

import (
	"context"

	"laundry/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListAvailableDeliveriesQueryHandler lists READY_FOR_DELIVERY orders by delivery slot.
// Orders the caller declined are not listed.
type ListAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableDeliveriesQueryHandler(db *gorm.DB) ListAvailableDeliveriesQueryHandler {
	return ListAvailableDeliveriesQueryHandler{db: db}
}

func (h ListAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableDeliveriesQuery,
) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return listOrders(ctx, h.db, `
		SELECT `+orderListColumns+`
		FROM orders o
		WHERE o.status = ? AND o.agent_id IS NULL
			AND NOT EXISTS (
				SELECT 1 FROM order_declines d
				WHERE d.order_id = o.id AND d.agent_id = ?
			)
		ORDER BY o.delivery_start, o.id
	`, order.ReadyForDelivery.String(), query.Actor().ID().Bytes())
}
