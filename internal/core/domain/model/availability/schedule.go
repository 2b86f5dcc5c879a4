package availability

import (
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// SaveHorizon returns the first and last calendar day an agent may plan:
// today through Sunday of next week.
func SaveHorizon(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	today := DateOf(local)
	daysToSunday := (7 - int(local.Weekday())) % 7
	return today, today.AddDate(0, 0, daysToSunday+7)
}

// CheckHorizon rejects dates outside SaveHorizon.
func CheckHorizon(date time.Time, now time.Time, loc *time.Location) error {
	from, to := SaveHorizon(now, loc)
	day := DateOf(date)
	if day.Before(from) || day.After(to) {
		return errs.NewValueIsOutOfRangeError("date", day.Format(time.DateOnly),
			from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	return nil
}

// CheckOverlaps returns a ConflictError when any two windows of the set
// collide. Windows sharing an ID are versions of the same entry and are
// compared only against the others.
func CheckOverlaps(windows []*Window) error {
	for i := range windows {
		for j := i + 1; j < len(windows); j++ {
			a, b := windows[i], windows[j]
			if a.id.IsEqual(b.id) {
				continue
			}
			if a.Overlaps(b) {
				return errs.NewConflictErrorWithCause("availability",
					fmt.Errorf("%s overlaps another window on %s", describe(b), a.date.Format(time.DateOnly)))
			}
		}
	}
	return nil
}

// Merge replaces stored windows by incoming ones with the same ID and
// appends new ones.
func Merge(stored, incoming []*Window) []*Window {
	merged := make([]*Window, 0, len(stored)+len(incoming))
	replaced := make(map[kernel.UUID]bool, len(incoming))
	for _, w := range incoming {
		replaced[w.id] = true
	}
	for _, w := range stored {
		if !replaced[w.id] {
			merged = append(merged, w)
		}
	}
	return append(merged, incoming...)
}

// AnyCovers reports whether a non-holiday window covers slot entirely.
func AnyCovers(windows []*Window, slot kernel.TimeWindow, loc *time.Location) bool {
	for _, w := range windows {
		if w.Covers(slot, loc) {
			return true
		}
	}
	return false
}

func describe(w *Window) string {
	if w.isHoliday {
		return "holiday"
	}
	return fmt.Sprintf("window %s-%s", clock(w.start), clock(w.end))
}
