package availability

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

const (
	// ServiceBandStart is the earliest time of day an agent can work.
	ServiceBandStart = 6 * time.Hour
	// ServiceBandEnd is the latest time of day an agent can work.
	ServiceBandEnd = 22 * time.Hour
)

var ErrWindowIsNotConstructed = errors.New("Window must be created via NewWindow constructor")

// Window is one day of a delivery agent's availability: either a holiday or
// a working interval [start, end) inside the service band. Start and end are
// offsets from midnight of date in the registry's time zone.
//
// Invariants:
//   - a holiday has no times
//   - otherwise ServiceBandStart <= start < end <= ServiceBandEnd
type Window struct {
	id        kernel.UUID
	agentID   kernel.UUID
	date      time.Time
	isHoliday bool
	start     time.Duration
	end       time.Duration

	isConstructed bool
}

// NewWindow validates and creates an availability window.
//
// Parameters:
//   - id: window identifier
//   - agentID: owning delivery agent
//   - date: the calendar day; only year, month and day are kept
//   - isHoliday: the agent does not work that day
//   - start, end: working interval as offsets from midnight, zero for holidays
//
// Returns:
//   - *Window: the window
//   - error: joined validation errors
//
// Example:
//
//	w, err := availability.NewWindow(kernel.NewUUID(), agentID,
//	    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), false, 9*time.Hour, 13*time.Hour)
func NewWindow(
	id kernel.UUID,
	agentID kernel.UUID,
	date time.Time,
	isHoliday bool,
	start, end time.Duration,
) (*Window, error) {
	w := &Window{isConstructed: true}

	if err := errors.Join(
		w.setID(id),
		w.setAgentID(agentID),
		w.setDate(date),
		w.setTimes(isHoliday, start, end),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Window) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWindowIsNotConstructed
	}
	return nil
}

func (w *Window) ID() kernel.UUID {
	return w.id
}

func (w *Window) AgentID() kernel.UUID {
	return w.agentID
}

// Date returns midnight UTC of the window's calendar day.
func (w *Window) Date() time.Time {
	return w.date
}

func (w *Window) IsHoliday() bool {
	return w.isHoliday
}

func (w *Window) Start() time.Duration {
	return w.start
}

func (w *Window) End() time.Duration {
	return w.end
}

// Edit replaces the day and times of the window, keeping its identity and owner.
func (w *Window) Edit(date time.Time, isHoliday bool, start, end time.Duration) error {
	next := *w
	if err := errors.Join(next.setDate(date), next.setTimes(isHoliday, start, end)); err != nil {
		return err
	}
	*w = next
	return nil
}

// Interval returns the working interval as absolute instants in loc.
// Holidays return false.
func (w *Window) Interval(loc *time.Location) (kernel.TimeWindow, bool) {
	if w.isHoliday {
		return kernel.TimeWindow{}, false
	}
	midnight := time.Date(w.date.Year(), w.date.Month(), w.date.Day(), 0, 0, 0, 0, loc)
	tw, err := kernel.NewTimeWindow(midnight.Add(w.start), midnight.Add(w.end))
	if err != nil {
		return kernel.TimeWindow{}, false
	}
	return tw, true
}

// Contains reports whether the agent works at instant.
func (w *Window) Contains(instant time.Time, loc *time.Location) bool {
	tw, ok := w.Interval(loc)
	return ok && tw.Contains(instant)
}

// Covers reports whether the whole of slot lies inside the working interval.
func (w *Window) Covers(slot kernel.TimeWindow, loc *time.Location) bool {
	tw, ok := w.Interval(loc)
	return ok && tw.Covers(slot)
}

// Overlaps reports whether two windows of the same agent collide. A holiday
// collides with every other window of its day.
func (w *Window) Overlaps(other *Window) bool {
	if !w.agentID.IsEqual(other.agentID) || !w.date.Equal(other.date) {
		return false
	}
	if w.isHoliday || other.isHoliday {
		return true
	}
	return w.start < other.end && other.start < w.end
}

func (w *Window) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Window) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agent", err)
	}
	w.agentID = id
	return nil
}

func (w *Window) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	w.date = DateOf(date)
	return nil
}

func (w *Window) setTimes(isHoliday bool, start, end time.Duration) error {
	if isHoliday {
		if start != 0 || end != 0 {
			return errs.NewValueIsInvalidErrorWithCause("holiday", errors.New("a holiday has no times"))
		}
		w.isHoliday, w.start, w.end = true, 0, 0
		return nil
	}
	if start < ServiceBandStart || end > ServiceBandEnd {
		return errs.NewValueIsOutOfRangeError("working time", fmt.Sprintf("%s-%s", clock(start), clock(end)),
			clock(ServiceBandStart), clock(ServiceBandEnd))
	}
	if start >= end {
		return errs.NewValueIsInvalidErrorWithCause("working time",
			fmt.Errorf("start %s is not before end %s", clock(start), clock(end)))
	}
	w.isHoliday, w.start, w.end = false, start, end
	return nil
}

// DateOf truncates t to its calendar day, expressed as midnight UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
