package queries

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/availability"
	"laundry/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListSavedAvailabilityQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
	loc   *time.Location
}

func NewListSavedAvailabilityQueryHandler(
	db *gorm.DB,
	clock ports.Clock,
	loc *time.Location,
) ListSavedAvailabilityQueryHandler {
	if loc == nil {
		loc = time.UTC
	}
	return ListSavedAvailabilityQueryHandler{db: db, clock: clock, loc: loc}
}

// Handle lists windows from today to the end of next week, by date and start.
func (h ListSavedAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query ListSavedAvailabilityQuery,
) ([]SavedAvailability, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	from, to := availability.SaveHorizon(h.clock.Now(), h.loc)
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, date, is_holiday, start_time, end_time
		FROM availability_windows
		WHERE agent_id = ? AND date BETWEEN ? AND ?
		ORDER BY date, start_time
	`, query.Actor().ID().Bytes(), datatypes.Date(from), datatypes.Date(to)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	windows := make([]SavedAvailability, 0)
	for rows.Next() {
		var w SavedAvailability
		var id uuid.UUID
		var start, end datatypes.Time
		if err = rows.Scan(&id, &w.Date, &w.IsHoliday, &start, &end); err != nil {
			return nil, err
		}
		if w.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		w.Date = availability.DateOf(w.Date)
		w.Start, w.End = time.Duration(start), time.Duration(end)
		windows = append(windows, w)
	}

	return windows, rows.Err()
}
