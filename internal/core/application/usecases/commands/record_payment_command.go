package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand is sent by the payment collaborator once the invoice
// of an order has been settled.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	reference string

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(orderID kernel.UUID, reference string) (RecordPaymentCommand, error) {
	reference = strings.TrimSpace(reference)
	var referenceErr error
	if reference == "" {
		referenceErr = errs.NewValueIsRequiredError("payment reference")
	}
	if err := errors.Join(orderID.Validate(), referenceErr); err != nil {
		return RecordPaymentCommand{}, err
	}
	return RecordPaymentCommand{
		orderID:   orderID,
		reference: reference,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reference is the payment gateway's transaction reference.
func (c RecordPaymentCommand) Reference() string {
	return c.reference
}
