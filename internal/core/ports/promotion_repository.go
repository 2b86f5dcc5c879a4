package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/promotion"
)

// PromotionRepository reads promotions.
type PromotionRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*promotion.Promotion, error)

	// ListValidAt returns promotions whose validity interval contains at.
	ListValidAt(ctx context.Context, at time.Time) ([]*promotion.Promotion, error)
}
