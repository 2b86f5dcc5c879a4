package payout

import (
	"fmt"

	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RateTable holds the parameters of an agent's delivery earning.
//
//	earning = FlatFee + PercentOfOrder * orderFinalAmount
//	charge  = min(CommissionRate * earning + FixedCharge, earning)
//	final   = earning - charge
type RateTable struct {
	FlatFee        decimal.Decimal
	PercentOfOrder decimal.Decimal
	CommissionRate decimal.Decimal
	FixedCharge    decimal.Decimal
}

// DefaultRateTable pays 30 plus 5% of the order, less 10% commission and a fixed 2.
func DefaultRateTable() RateTable {
	return RateTable{
		FlatFee:        decimal.NewFromInt(30),
		PercentOfOrder: decimal.RequireFromString("0.05"),
		CommissionRate: decimal.RequireFromString("0.10"),
		FixedCharge:    decimal.NewFromInt(2),
	}
}

func (r RateTable) Validate() error {
	for name, v := range map[string]decimal.Decimal{
		"flat fee":         r.FlatFee,
		"percent of order": r.PercentOfOrder,
		"commission rate":  r.CommissionRate,
		"fixed charge":     r.FixedCharge,
	} {
		if v.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v))
		}
	}
	if r.CommissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return errs.NewValueIsOutOfRangeError("commission rate", r.CommissionRate.String(), 0, 1)
	}
	return nil
}

// Calculate returns earning, charge and final amount for an order total.
// A negative order total counts as zero. The charge never exceeds the earning.
func (r RateTable) Calculate(orderFinalAmount decimal.Decimal) (earning, charge, final decimal.Decimal) {
	base := decimal.Max(orderFinalAmount, decimal.Zero)

	earning = r.FlatFee.Add(r.PercentOfOrder.Mul(base)).Round(2)
	charge = decimal.Min(r.CommissionRate.Mul(earning).Add(r.FixedCharge), earning).Round(2)
	final = decimal.Max(earning.Sub(charge), decimal.Zero)

	return earning, charge, final
}
