package promotionrepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/promotion"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPromotionRepository implements PromotionRepository using GORM.
type GormPromotionRepository struct {
	db *gorm.DB
}

func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

func (r *GormPromotionRepository) Get(ctx context.Context, id kernel.UUID) (*promotion.Promotion, error) {
	var dto PromotionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("promotion", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListValidAt returns promotions with valid_from <= at <= valid_until, ordered by code.
func (r *GormPromotionRepository) ListValidAt(ctx context.Context, at time.Time) ([]*promotion.Promotion, error) {
	var dtos []PromotionDTO
	err := r.db.WithContext(ctx).
		Where("valid_from <= ? AND valid_until >= ?", at, at).
		Order("code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	promotions := make([]*promotion.Promotion, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, nil
}
