package queries

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListProviderOrdersQueryHandler lists a provider's orders, newest pickups last.
type ListProviderOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListProviderOrdersQueryHandler(db *gorm.DB) ListProviderOrdersQueryHandler {
	return ListProviderOrdersQueryHandler{db: db}
}

func (h ListProviderOrdersQueryHandler) Handle(ctx context.Context, query ListProviderOrdersQuery) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return listOrders(ctx, h.db, `
		SELECT `+orderListColumns+`
		FROM orders o
		WHERE o.provider_id = ? AND o.status = ANY(?)
		ORDER BY o.pickup_start, o.id
	`, query.Actor().ID().Bytes(), pq.Array(statusNames(query.Group().Statuses())))
}
