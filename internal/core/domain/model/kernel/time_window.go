package kernel

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when validating a zero-value TimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError("time window must be created via NewTimeWindow")

// TimeWindow is a half-open interval [start, end) of absolute instants.
// It describes pickup and delivery slots of an order.
//
// Invariants:
//   - start and end are non-zero
//   - start is strictly before end
//
// Example:
//
//	pickup, err := kernel.NewTimeWindow(
//	    time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC),
//	    time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC),
//	)
type TimeWindow struct { //nolint:recvcheck //using for validation
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewTimeWindow validates and creates a window. Both instants are normalized to UTC.
//
// Returns:
//   - TimeWindow: the window if start < end
//   - error: ValueIsRequired for zero instants, ValueIsInvalid when end is not after start
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	w := TimeWindow{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		w.setStart(start),
		w.setEnd(end),
	); err != nil {
		return TimeWindow{}, err
	}

	if !w.start.Before(w.end) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"time window",
			fmt.Errorf("end %s is not after start %s", w.end.Format(time.RFC3339), w.start.Format(time.RFC3339)),
		)
	}

	return w, nil
}

// Start returns the inclusive lower bound.
func (w TimeWindow) Start() time.Time {
	return w.start
}

// End returns the exclusive upper bound.
func (w TimeWindow) End() time.Time {
	return w.end
}

// Duration returns end - start.
func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Contains reports whether instant lies in [start, end).
func (w TimeWindow) Contains(instant time.Time) bool {
	return !instant.Before(w.start) && instant.Before(w.end)
}

// Overlaps reports whether the two windows share at least one instant.
// Adjacent windows (one ends where the other starts) do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// Covers reports whether other lies entirely within w.
func (w TimeWindow) Covers(other TimeWindow) bool {
	return !other.start.Before(w.start) && !other.end.After(w.end)
}

// Shift returns the window moved by d.
func (w TimeWindow) Shift(d time.Duration) TimeWindow {
	return TimeWindow{
		start: w.start.Add(d),
		end:   w.end.Add(d),
		guard: w.guard,
	}
}

// IsEqual compares bounds.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start.Equal(other.start) && w.end.Equal(other.end)
}

// Validate returns ErrTimeWindowIsNotConstructed for zero values.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// String renders the window as "start/end" in RFC3339.
func (w TimeWindow) String() string {
	return fmt.Sprintf("%s/%s", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

func (w *TimeWindow) setStart(start time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("start")
	}
	w.start = start.UTC()
	return nil
}

func (w *TimeWindow) setEnd(end time.Time) error {
	if end.IsZero() {
		return errs.NewValueIsRequiredError("end")
	}
	w.end = end.UTC()
	return nil
}
