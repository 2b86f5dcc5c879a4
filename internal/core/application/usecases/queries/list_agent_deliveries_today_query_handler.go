package queries

import (
	"context"
	"time"

	"laundry/internal/core/ports"

	"gorm.io/gorm"
)

// ListAgentDeliveriesTodayQueryHandler lists the agent's orders whose delivery
// slot starts on the current day of the service time zone, delivered ones included.
type ListAgentDeliveriesTodayQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
	loc   *time.Location
}

func NewListAgentDeliveriesTodayQueryHandler(
	db *gorm.DB,
	clock ports.Clock,
	loc *time.Location,
) ListAgentDeliveriesTodayQueryHandler {
	if loc == nil {
		loc = time.UTC
	}
	return ListAgentDeliveriesTodayQueryHandler{db: db, clock: clock, loc: loc}
}

func (h ListAgentDeliveriesTodayQueryHandler) Handle(
	ctx context.Context,
	query ListAgentDeliveriesTodayQuery,
) ([]OrderListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now().In(h.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	return listOrders(ctx, h.db, `
		SELECT `+orderListColumns+`
		FROM orders o
		WHERE o.agent_id = ? AND o.delivery_start >= ? AND o.delivery_start < ?
		ORDER BY o.delivery_start, o.id
	`, query.Actor().ID().Bytes(), dayStart, dayEnd)
}
