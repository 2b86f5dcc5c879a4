package order

import (
	"fmt"

	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricingPolicy holds the charges added on top of the items subtotal.
type PricingPolicy struct {
	TaxRate        decimal.Decimal
	DeliveryCharge decimal.Decimal
}

// DefaultPricingPolicy is 18% GST and a flat delivery charge of 40.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:        decimal.RequireFromString("0.18"),
		DeliveryCharge: decimal.NewFromInt(40),
	}
}

// Validate rejects negative rates and charges.
func (p PricingPolicy) Validate() error {
	if p.TaxRate.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("tax rate is invalid", fmt.Errorf("%s is negative", p.TaxRate))
	}
	if p.DeliveryCharge.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("delivery charge is invalid", fmt.Errorf("%s is negative", p.DeliveryCharge))
	}
	return nil
}

// Totals is the computed bill of an order. Amounts are rounded to 2 decimals.
//
//	tax   = (subtotal - discount) * taxRate
//	final = max(0, subtotal - discount + tax + deliveryCharge)
type Totals struct {
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	TaxRate        decimal.Decimal
	Tax            decimal.Decimal
	DeliveryCharge decimal.Decimal
	FinalAmount    decimal.Decimal
}

// ComputeTotals prices items under policy with the given discount.
// The discount is clamped to the subtotal so the taxable base never goes negative.
func ComputeTotals(items []*LineItem, policy PricingPolicy, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total())
	}
	return computeTotals(subtotal, policy.TaxRate, policy.DeliveryCharge, discount)
}

// WithDiscount recomputes the totals with a new discount, keeping rates and charges.
func (t Totals) WithDiscount(discount decimal.Decimal) Totals {
	return computeTotals(t.Subtotal, t.TaxRate, t.DeliveryCharge, discount)
}

func computeTotals(subtotal, taxRate, deliveryCharge, discount decimal.Decimal) Totals {
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	discount = decimal.Min(discount, subtotal).Round(2)

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxRate).Round(2)
	final := decimal.Max(decimal.Zero, taxable.Add(tax).Add(deliveryCharge)).Round(2)

	return Totals{
		Subtotal:       subtotal.Round(2),
		Discount:       discount,
		TaxRate:        taxRate,
		Tax:            tax,
		DeliveryCharge: deliveryCharge.Round(2),
		FinalAmount:    final,
	}
}
