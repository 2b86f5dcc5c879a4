package promotion

import "github.com/shopspring/decimal"

// Result is the outcome of applying a promotion. Business rejections are
// reported here with Applied false rather than as errors.
type Result struct {
	Applied     bool
	Reason      string
	Discount    decimal.Decimal
	FinalAmount decimal.Decimal
}

// Rejected builds a result that leaves the order's amounts unchanged.
func Rejected(reason string, discount, finalAmount decimal.Decimal) Result {
	return Result{Reason: reason, Discount: discount, FinalAmount: finalAmount}
}

// AppliedWith builds a successful result.
func AppliedWith(discount, finalAmount decimal.Decimal) Result {
	return Result{Applied: true, Discount: discount, FinalAmount: finalAmount}
}
