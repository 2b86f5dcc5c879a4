package queries

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/availability"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckAvailabilityQueryHandler answers from the agent's non-holiday windows
// of the instant's calendar day in the service time zone.
type CheckAvailabilityQueryHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewCheckAvailabilityQueryHandler(db *gorm.DB, loc *time.Location) CheckAvailabilityQueryHandler {
	if loc == nil {
		loc = time.UTC
	}
	return CheckAvailabilityQueryHandler{db: db, loc: loc}
}

// Handle reports whether a window [start, end) of the agent contains the instant.
func (h CheckAvailabilityQueryHandler) Handle(ctx context.Context, query CheckAvailabilityQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}

	local := query.At().In(h.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, h.loc)
	timeOfDay := datatypes.Time(local.Sub(midnight))

	var available bool
	err := h.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM availability_windows
			WHERE agent_id = ? AND date = ? AND NOT is_holiday
				AND start_time <= ? AND end_time > ?
		)
	`, query.AgentID().Bytes(), datatypes.Date(availability.DateOf(local)), timeOfDay, timeOfDay).
		Row().Scan(&available)
	if err != nil {
		return false, err
	}

	return available, nil
}
