package otprepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOtpRepository implements OtpRepository using GORM.
type GormOtpRepository struct {
	db *gorm.DB
}

func NewGormOtpRepository(db *gorm.DB) *GormOtpRepository {
	return &GormOtpRepository{db: db}
}

// Save upserts the challenge of its order.
func (r *GormOtpRepository) Save(ctx context.Context, challenge *otp.Challenge) error {
	if err := challenge.Validate(); err != nil {
		return err
	}

	dto := fromDomain(challenge)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "code_hash", "issued_at", "expires_at", "consumed_at"}),
	}).Create(&dto).Error
}

func (r *GormOtpRepository) Get(ctx context.Context, orderID kernel.UUID) (*otp.Challenge, error) {
	var dto ChallengeDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("otp challenge", orderID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// DeleteStale removes challenges that were consumed or expired before the given instant.
func (r *GormOtpRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("consumed_at < ? OR expires_at < ?", before, before).
		Delete(&ChallengeDTO{})
	return result.RowsAffected, result.Error
}
