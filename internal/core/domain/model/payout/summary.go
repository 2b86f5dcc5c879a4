package payout

import (
	"fmt"
	"time"

	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Period selects the entries a summary covers.
type Period int

const (
	Overall Period = iota
	Custom
)

// Filter restricts entries by creation date. For Custom both dates are
// inclusive calendar days.
type Filter struct {
	Period Period
	From   time.Time
	To     time.Time
}

// NewFilter parses "overall" or "custom".
func NewFilter(period string, from, to time.Time) (Filter, error) {
	switch period {
	case "", "overall":
		return Filter{Period: Overall}, nil
	case "custom":
		if from.IsZero() || to.IsZero() {
			return Filter{}, errs.NewValueIsRequiredError("start and end dates")
		}
		if to.Before(from) {
			return Filter{}, errs.NewValueIsInvalidErrorWithCause("date range", fmt.Errorf("end %s is before start %s",
				to.Format(time.DateOnly), from.Format(time.DateOnly)))
		}
		return Filter{Period: Custom, From: from, To: to}, nil
	default:
		return Filter{}, errs.NewValueIsInvalidErrorWithCause("filter", fmt.Errorf("%q is not overall or custom", period))
	}
}

// Bounds returns the half-open creation interval [from, to) of a Custom filter.
func (f Filter) Bounds() (time.Time, time.Time, bool) {
	if f.Period != Custom {
		return time.Time{}, time.Time{}, false
	}
	from := time.Date(f.From.Year(), f.From.Month(), f.From.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return from, to, true
}

// Summary aggregates final amounts of an agent's entries.
type Summary struct {
	TotalEarnings  decimal.Decimal
	PaidPayouts    decimal.Decimal
	PendingPayouts decimal.Decimal
}

// Summarize adds up entries matching f.
func Summarize(entries []*Entry, f Filter) Summary {
	s := Summary{TotalEarnings: decimal.Zero, PaidPayouts: decimal.Zero, PendingPayouts: decimal.Zero}
	from, to, bounded := f.Bounds()
	for _, e := range entries {
		if bounded && (e.createdAt.Before(from) || !e.createdAt.Before(to)) {
			continue
		}
		s.TotalEarnings = s.TotalEarnings.Add(e.finalAmount)
		if e.paid {
			s.PaidPayouts = s.PaidPayouts.Add(e.finalAmount)
		} else {
			s.PendingPayouts = s.PendingPayouts.Add(e.finalAmount)
		}
	}
	return s
}
