package services

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payout"
	"laundry/internal/pkg/errs"
)

// PayoutCalculator turns a delivered order into the agent's ledger entry.
type PayoutCalculator struct {
	rates payout.RateTable
}

func NewPayoutCalculator(rates payout.RateTable) PayoutCalculator {
	return PayoutCalculator{rates: rates}
}

// EntryFor computes the payout of o.
//
// Returns:
//   - ValueIsInvalidError when o is not delivered or has no agent
func (c PayoutCalculator) EntryFor(o *order.Order, now time.Time) (*payout.Entry, error) {
	if o.Status() != order.Delivered {
		return nil, errs.NewValueIsInvalidError("order is not delivered")
	}
	if o.AgentID() == nil {
		return nil, errs.NewValueIsRequiredError("delivery agent")
	}
	return payout.NewEntry(kernel.NewUUID(), *o.AgentID(), o.ID(), o.Totals().FinalAmount, c.rates, now)
}
