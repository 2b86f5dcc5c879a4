package promotion

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrPromotionIsNotConstructed = errors.New("Promotion must be created via NewPromotion constructor")

// Rejection reasons reported in Result.Reason.
const (
	ReasonAlreadyApplied  = "promotion already applied"
	ReasonNotYetValid     = "promotion is not yet valid"
	ReasonExpired         = "promotion expired"
	ReasonBelowMinimum    = "order value is below the promotion minimum"
	ReasonFirstOrderOnly  = "promotion is valid on the first order only"
	ReasonOtherProvider   = "promotion is not offered by this provider"
	ReasonBillFinalized   = "bill already finalized"
	ReasonOrderClosed     = "order is closed"
	ReasonNothingToReduce = "promotion gives no discount on this order"
)

// DiscountType selects how Value is interpreted.
type DiscountType int

const (
	UnknownDiscount DiscountType = iota
	// Percent: Value is a percentage of the subtotal, optionally capped by MaxDiscount.
	Percent
	// Flat: Value is a fixed amount.
	Flat
)

func (d DiscountType) String() string {
	switch d {
	case Percent:
		return "PERCENT"
	case Flat:
		return "FLAT"
	default:
		return "UNKNOWN"
	}
}

// DiscountTypeFromString parses PERCENT or FLAT.
func DiscountTypeFromString(s string) (DiscountType, error) {
	switch s {
	case "PERCENT":
		return Percent, nil
	case "FLAT":
		return Flat, nil
	default:
		return UnknownDiscount, errs.NewValueIsInvalidErrorWithCause("discount type", fmt.Errorf("%q is not a known type", s))
	}
}

// Eligibility is the predicate an order has to satisfy.
type Eligibility struct {
	MinOrderValue  decimal.Decimal
	FirstOrderOnly bool
	// ProviderID limits the promotion to one provider; nil means any provider.
	ProviderID *kernel.UUID
}

// Promotion is a discount code offered to customers for a validity period.
type Promotion struct {
	id           kernel.UUID
	code         string
	description  string
	validFrom    time.Time
	validUntil   time.Time
	discountType DiscountType
	value        decimal.Decimal
	maxDiscount  *decimal.Decimal
	eligibility  Eligibility

	isConstructed bool
}

// NewPromotion validates and creates a promotion.
//
// Returns joined validation errors for a blank code, an empty validity
// interval, an unknown discount type, a non-positive value or a percentage above 100.
func NewPromotion(
	id kernel.UUID,
	code, description string,
	validFrom, validUntil time.Time,
	discountType DiscountType,
	value decimal.Decimal,
	maxDiscount *decimal.Decimal,
	eligibility Eligibility,
) (*Promotion, error) {
	p := &Promotion{
		description:   strings.TrimSpace(description),
		eligibility:   eligibility,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setValidity(validFrom, validUntil),
		p.setDiscount(discountType, value, maxDiscount),
	); err != nil {
		return nil, err
	}
	if eligibility.MinOrderValue.IsNegative() {
		return nil, errs.NewValueIsInvalidError("minimum order value")
	}

	return p, nil
}

func (p *Promotion) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPromotionIsNotConstructed
	}
	return nil
}

func (p *Promotion) ID() kernel.UUID {
	return p.id
}

func (p *Promotion) Code() string {
	return p.code
}

func (p *Promotion) Description() string {
	return p.description
}

func (p *Promotion) ValidFrom() time.Time {
	return p.validFrom
}

func (p *Promotion) ValidUntil() time.Time {
	return p.validUntil
}

func (p *Promotion) DiscountType() DiscountType {
	return p.discountType
}

func (p *Promotion) Value() decimal.Decimal {
	return p.value
}

func (p *Promotion) MaxDiscount() *decimal.Decimal {
	return p.maxDiscount
}

func (p *Promotion) Eligibility() Eligibility {
	return p.eligibility
}

// Candidate describes the order a promotion is evaluated against.
type Candidate struct {
	Subtotal     decimal.Decimal
	ProviderID   kernel.UUID
	IsFirstOrder bool
	Now          time.Time
}

// Check returns the reason the promotion does not apply to c, or "" when it does.
// Validity bounds are inclusive.
func (p *Promotion) Check(c Candidate) string {
	switch {
	case c.Now.Before(p.validFrom):
		return ReasonNotYetValid
	case c.Now.After(p.validUntil):
		return ReasonExpired
	case c.Subtotal.LessThan(p.eligibility.MinOrderValue):
		return ReasonBelowMinimum
	case p.eligibility.FirstOrderOnly && !c.IsFirstOrder:
		return ReasonFirstOrderOnly
	case p.eligibility.ProviderID != nil && !p.eligibility.ProviderID.IsEqual(c.ProviderID):
		return ReasonOtherProvider
	case !p.DiscountOn(c.Subtotal).IsPositive():
		return ReasonNothingToReduce
	default:
		return ""
	}
}

// DiscountOn computes the discount for subtotal: a percentage (capped by
// MaxDiscount when set) or a flat amount, never more than the subtotal.
//
// Example:
//
//	// 20% capped at 100 on a subtotal of 800
//	p.DiscountOn(decimal.NewFromInt(800)) // 100
func (p *Promotion) DiscountOn(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch p.discountType {
	case Percent:
		discount = subtotal.Mul(p.value).Div(decimal.NewFromInt(100))
		if p.maxDiscount != nil {
			discount = decimal.Min(discount, *p.maxDiscount)
		}
	case Flat:
		discount = p.value
	default:
		return decimal.Zero
	}

	return decimal.Min(discount, subtotal).Round(2)
}

func (p *Promotion) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Promotion) setCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return errs.NewValueIsRequiredError("promotion code")
	}
	p.code = code
	return nil
}

func (p *Promotion) setValidity(from, until time.Time) error {
	if from.IsZero() || until.IsZero() {
		return errs.NewValueIsRequiredError("validity")
	}
	if !from.Before(until) {
		return errs.NewValueIsInvalidErrorWithCause("validity", errors.New("valid from is not before valid until"))
	}
	p.validFrom, p.validUntil = from.UTC(), until.UTC()
	return nil
}

func (p *Promotion) setDiscount(t DiscountType, value decimal.Decimal, maxDiscount *decimal.Decimal) error {
	if t != Percent && t != Flat {
		return errs.NewValueIsInvalidErrorWithCause("discount type", fmt.Errorf("%d is not a valid type", t))
	}
	if !value.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("discount value", fmt.Errorf("%s is not positive", value))
	}
	if t == Percent && value.GreaterThan(decimal.NewFromInt(100)) {
		return errs.NewValueIsOutOfRangeError("discount percent", value.String(), 0, 100)
	}
	if maxDiscount != nil && !maxDiscount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("max discount", fmt.Errorf("%s is not positive", maxDiscount))
	}
	p.discountType, p.value, p.maxDiscount = t, value, maxDiscount
	return nil
}
