package payoutrepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/payout"
	"laundry/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormPayoutRepository implements PayoutRepository using GORM.
type GormPayoutRepository struct {
	db *gorm.DB
}

func NewGormPayoutRepository(db *gorm.DB) *GormPayoutRepository {
	return &GormPayoutRepository{db: db}
}

// Add inserts the entry. A second entry for the same order yields ConflictError.
func (r *GormPayoutRepository) Add(ctx context.Context, entry *payout.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewConflictErrorWithCause("payout of order "+entry.OrderID().String(), err)
		}
		return err
	}
	return nil
}

func (r *GormPayoutRepository) MarkPaid(ctx context.Context, entry *payout.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&EntryDTO{}).
		Where("id = ?", entry.ID().Bytes()).
		Updates(map[string]any{"is_paid": entry.IsPaid(), "paid_at": entry.PaidAt()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payout", entry.ID().String())
	}
	return nil
}

func (r *GormPayoutRepository) Get(ctx context.Context, id kernel.UUID) (*payout.Entry, error) {
	return r.first(ctx, "payout", id, "id = ?")
}

func (r *GormPayoutRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*payout.Entry, error) {
	return r.first(ctx, "payout of order", orderID, "order_id = ?")
}

func (r *GormPayoutRepository) first(ctx context.Context, what string, id kernel.UUID, where string) (*payout.Entry, error) {
	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, where, id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(what, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
