package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListPayoutsQueryHandler struct {
	db *gorm.DB
}

func NewListPayoutsQueryHandler(db *gorm.DB) ListPayoutsQueryHandler {
	return ListPayoutsQueryHandler{db: db}
}

func (h ListPayoutsQueryHandler) Handle(ctx context.Context, query ListPayoutsQuery) ([]PayoutListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("payout_entries").
		Select("id, order_id, delivery_earning, charge, final_amount, is_paid, paid_at, created_at").
		Where("agent_id = ?", query.Actor().ID().Bytes())
	switch query.Scope() {
	case PaidPayouts:
		db = db.Where("is_paid")
	case PendingPayouts:
		db = db.Where("NOT is_paid")
	case AllPayouts:
	}

	rows, err := db.Order("created_at DESC, id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]PayoutListItem, 0)
	for rows.Next() {
		var e PayoutListItem
		var id, orderID uuid.UUID
		err = rows.Scan(&id, &orderID, &e.DeliveryEarning, &e.Charge, &e.FinalAmount, &e.IsPaid, &e.PaidAt, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		if e.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if e.OrderID, err = toUUID(orderID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
