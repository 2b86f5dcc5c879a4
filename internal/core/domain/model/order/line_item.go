package order

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created via NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one priced garment line of an order: a catalog item, how many
// pieces, and the unit price captured from the catalog when the order was placed.
//
// Invariants:
//   - item ID is valid and name is not blank
//   - quantity is positive
//   - unit price is not negative
type LineItem struct {
	itemID    kernel.UUID
	name      string
	quantity  int
	unitPrice decimal.Decimal

	isConstructed bool
}

// NewLineItem validates and creates a line item.
//
// Parameters:
//   - itemID: catalog item identifier
//   - name: display name captured from the catalog
//   - quantity: number of pieces (> 0)
//   - unitPrice: price per piece (>= 0)
//
// Returns:
//   - *LineItem: the created line item
//   - error: joined validation errors of every invalid parameter
//
// Example:
//
//	shirt, err := order.NewLineItem(itemID, "Shirt - wash & iron", 3, decimal.RequireFromString("25.00"))
func NewLineItem(itemID kernel.UUID, name string, quantity int, unitPrice decimal.Decimal) (*LineItem, error) {
	li := &LineItem{isConstructed: true}

	if err := errors.Join(
		li.setItemID(itemID),
		li.setName(name),
		li.setQuantity(quantity),
		li.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return li, nil
}

// Validate ensures the line item was created through NewLineItem.
func (li *LineItem) Validate() error {
	if li == nil || !li.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ItemID returns the catalog item identifier.
func (li *LineItem) ItemID() kernel.UUID {
	return li.itemID
}

// Name returns the item name captured at order time.
func (li *LineItem) Name() string {
	return li.name
}

// Quantity returns the number of pieces.
func (li *LineItem) Quantity() int {
	return li.quantity
}

// UnitPrice returns the price of one piece.
func (li *LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

// Total returns quantity * unit price.
func (li *LineItem) Total() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}

func (li *LineItem) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.itemID = id
	return nil
}

func (li *LineItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	li.name = name
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid", fmt.Errorf("%s is negative", price))
	}
	li.unitPrice = price
	return nil
}
