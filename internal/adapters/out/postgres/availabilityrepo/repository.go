package availabilityrepo

import (
	"context"
	"errors"
	"slices"
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormAvailabilityRepository implements AvailabilityRepository using GORM.
type GormAvailabilityRepository struct {
	db *gorm.DB
}

func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

// LockAgentDays takes a transaction scoped advisory lock per agent and day.
// Days are locked in ascending order so that two writers never wait on each other in a cycle.
func (r *GormAvailabilityRepository) LockAgentDays(ctx context.Context, agentID kernel.UUID, dates ...time.Time) error {
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		key := agentID.String() + "/" + availability.DateOf(d).Format(time.DateOnly)
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormAvailabilityRepository) Add(ctx context.Context, window *availability.Window) error {
	if err := window.Validate(); err != nil {
		return err
	}
	dto := fromDomain(window)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormAvailabilityRepository) Update(ctx context.Context, window *availability.Window) error {
	if err := window.Validate(); err != nil {
		return err
	}
	dto := fromDomain(window)
	result := r.db.WithContext(ctx).Model(&WindowDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{
			"date":       dto.Date,
			"is_holiday": dto.IsHoliday,
			"start_time": dto.StartTime,
			"end_time":   dto.EndTime,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("availability window", window.ID().String())
	}
	return nil
}

func (r *GormAvailabilityRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&WindowDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("availability window", id.String())
	}
	return nil
}

func (r *GormAvailabilityRepository) Get(ctx context.Context, id kernel.UUID) (*availability.Window, error) {
	var dto WindowDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("availability window", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormAvailabilityRepository) ListByAgent(
	ctx context.Context,
	agentID kernel.UUID,
	from, to time.Time,
) ([]*availability.Window, error) {
	var dtos []WindowDTO
	err := r.db.WithContext(ctx).
		Where("agent_id = ? AND date BETWEEN ? AND ?", agentID.Bytes(),
			datatypes.Date(availability.DateOf(from)), datatypes.Date(availability.DateOf(to))).
		Order("date, start_time").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	windows := make([]*availability.Window, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}
