// Package promotionrepo reads promotions. Promotions are maintained by the
// marketing back office; this service only reads them.
package promotionrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/promotion"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PromotionDTO struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Code           string              `gorm:"type:varchar(64);not null;uniqueIndex"`
	Description    string              `gorm:"type:text;not null;default:''"`
	ValidFrom      time.Time           `gorm:"not null;index:idx_promotions_validity"`
	ValidUntil     time.Time           `gorm:"not null;index:idx_promotions_validity"`
	DiscountType   string              `gorm:"type:varchar(16);not null"`
	Value          decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	MaxDiscount    decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	MinOrderValue  decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	FirstOrderOnly bool                `gorm:"not null;default:false"`
	ProviderID     *uuid.UUID          `gorm:"type:uuid"`
}

func (PromotionDTO) TableName() string {
	return "promotions"
}

// FromDomain maps a promotion to its row. It is used to seed promotions.
func FromDomain(p *promotion.Promotion) PromotionDTO {
	dto := PromotionDTO{
		ID:             p.ID().Bytes(),
		Code:           p.Code(),
		Description:    p.Description(),
		ValidFrom:      p.ValidFrom(),
		ValidUntil:     p.ValidUntil(),
		DiscountType:   p.DiscountType().String(),
		Value:          p.Value(),
		MinOrderValue:  p.Eligibility().MinOrderValue,
		FirstOrderOnly: p.Eligibility().FirstOrderOnly,
	}
	if max := p.MaxDiscount(); max != nil {
		dto.MaxDiscount = decimal.NewNullDecimal(*max)
	}
	if providerID := p.Eligibility().ProviderID; providerID != nil {
		raw := providerID.Bytes()
		dto.ProviderID = &raw
	}
	return dto
}

func toDomain(dto PromotionDTO) (*promotion.Promotion, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	discountType, err := promotion.DiscountTypeFromString(dto.DiscountType)
	if err != nil {
		return nil, err
	}

	var maxDiscount *decimal.Decimal
	if dto.MaxDiscount.Valid {
		maxDiscount = &dto.MaxDiscount.Decimal
	}

	eligibility := promotion.Eligibility{
		MinOrderValue:  dto.MinOrderValue,
		FirstOrderOnly: dto.FirstOrderOnly,
	}
	if dto.ProviderID != nil {
		providerID, err := kernel.UUIDFromBytes((*dto.ProviderID)[:])
		if err != nil {
			return nil, err
		}
		eligibility.ProviderID = &providerID
	}

	return promotion.NewPromotion(id, dto.Code, dto.Description, dto.ValidFrom, dto.ValidUntil,
		discountType, dto.Value, maxDiscount, eligibility)
}
