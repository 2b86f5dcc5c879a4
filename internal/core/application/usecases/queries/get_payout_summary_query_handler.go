package queries

import (
	"context"

	"laundry/internal/core/domain/model/payout"

	"gorm.io/gorm"
)

// GetPayoutSummaryQueryHandler adds up final amounts of ledger entries in SQL.
// The totals match payout.Summarize over the same entries.
type GetPayoutSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetPayoutSummaryQueryHandler(db *gorm.DB) GetPayoutSummaryQueryHandler {
	return GetPayoutSummaryQueryHandler{db: db}
}

func (h GetPayoutSummaryQueryHandler) Handle(ctx context.Context, query GetPayoutSummaryQuery) (payout.Summary, error) {
	if err := query.Validate(); err != nil {
		return payout.Summary{}, err
	}

	db := h.db.WithContext(ctx).Table("payout_entries").
		Select(`COALESCE(SUM(final_amount), 0),
			COALESCE(SUM(final_amount) FILTER (WHERE is_paid), 0),
			COALESCE(SUM(final_amount) FILTER (WHERE NOT is_paid), 0)`).
		Where("agent_id = ?", query.Actor().ID().Bytes())
	if from, to, bounded := query.Filter().Bounds(); bounded {
		db = db.Where("created_at >= ? AND created_at < ?", from, to)
	}

	var s payout.Summary
	if err := db.Row().Scan(&s.TotalEarnings, &s.PaidPayouts, &s.PendingPayouts); err != nil {
		return payout.Summary{}, err
	}
	return s, nil
}
