package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/otp"
	"laundry/internal/pkg/errs"
)

var ErrOtpCodeIsRequired = errs.NewValueIsRequiredError("otp code")

// OtpCommand is an order status change confirmed by the code the other
// party reads out at the handoff.
type OtpCommand struct {
	OrderCommand
	code string
}

func newOtpCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey, code string) (OtpCommand, error) {
	base, err := newOrderCommand(orderID, actor, idempotencyKey)
	code = strings.TrimSpace(code)
	var codeErr error
	if code == "" {
		codeErr = ErrOtpCodeIsRequired
	}
	if err = errors.Join(err, codeErr); err != nil {
		return OtpCommand{}, err
	}
	return OtpCommand{OrderCommand: base, code: code}, nil
}

// Code returns the OTP as entered.
func (c OtpCommand) Code() string {
	return c.code
}

// MarkPickedUpCommand: the provider collected the clothes, confirmed by the PICKUP code.
type MarkPickedUpCommand struct{ OtpCommand }

func NewMarkPickedUpCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey, code string) (MarkPickedUpCommand, error) {
	c, err := newOtpCommand(orderID, actor, idempotencyKey, code)
	return MarkPickedUpCommand{c}, err
}

// ConfirmHandoverCommand: the agent received the clothes, confirmed by the HANDOVER code.
type ConfirmHandoverCommand struct{ OtpCommand }

func NewConfirmHandoverCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey, code string) (ConfirmHandoverCommand, error) {
	c, err := newOtpCommand(orderID, actor, idempotencyKey, code)
	return ConfirmHandoverCommand{c}, err
}

// ConfirmDeliveryCommand: the customer received the clothes, confirmed by the DELIVERY code.
type ConfirmDeliveryCommand struct{ OtpCommand }

func NewConfirmDeliveryCommand(orderID kernel.UUID, actor kernel.Actor, idempotencyKey, code string) (ConfirmDeliveryCommand, error) {
	c, err := newOtpCommand(orderID, actor, idempotencyKey, code)
	return ConfirmDeliveryCommand{c}, err
}

var ErrIssueOtpCommandIsNotConstructed = errors.New("IssueOtpCommand must be created via NewIssueOtpCommand constructor")

// IssueOtpCommand asks for a (new) code of a kind to be sent to its holder.
type IssueOtpCommand struct {
	OrderCommand
	kind otp.Kind
}

func NewIssueOtpCommand(orderID kernel.UUID, actor kernel.Actor, kind otp.Kind) (IssueOtpCommand, error) {
	base, err := newOrderCommand(orderID, actor, "")
	if err = errors.Join(err, kind.Validate()); err != nil {
		return IssueOtpCommand{}, err
	}
	return IssueOtpCommand{OrderCommand: base, kind: kind}, nil
}

func (c IssueOtpCommand) Kind() otp.Kind {
	return c.kind
}
