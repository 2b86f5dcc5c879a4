package otp

import (
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// Kind names the physical handoff an OTP gates.
type Kind int

const (
	UnknownKind Kind = iota
	// Pickup: customer hands clothes to the provider.
	Pickup
	// Handover: provider hands cleaned clothes to the delivery agent.
	Handover
	// Delivery: agent hands clothes back to the customer.
	Delivery
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind: "UNKNOWN",
		Pickup:      "PICKUP",
		Handover:    "HANDOVER",
		Delivery:    "DELIVERY",
	}
}

// KindFromString parses PICKUP, HANDOVER or DELIVERY.
func KindFromString(s string) (Kind, error) {
	for kind, name := range getKindStrings() {
		if kind != UnknownKind && name == s {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("otp kind", fmt.Errorf("%q is not a known kind", s))
}

func (k Kind) String() string {
	if s, ok := getKindStrings()[k]; ok {
		return s
	}
	return "UNKNOWN"
}

func (k Kind) Validate() error {
	if _, ok := getKindStrings()[k]; !ok || k == UnknownKind {
		return errs.NewValueIsInvalidErrorWithCause("otp kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// IssuableIn reports whether an OTP of kind k may be (re)issued while the order is in s.
//
//	PICKUP   <- ACCEPTED_BY_PROVIDER
//	HANDOVER <- READY_FOR_DELIVERY, ACCEPTED_BY_AGENT
//	DELIVERY <- OUT_FOR_DELIVERY
func (k Kind) IssuableIn(s order.Status) bool {
	switch k {
	case Pickup:
		return s == order.AcceptedByProvider
	case Handover:
		return s == order.ReadyForDelivery || s == order.AcceptedByAgent
	case Delivery:
		return s == order.OutForDelivery
	default:
		return false
	}
}

// Holder returns the participant who receives the code and reads it out
// to the other party at the handoff.
func (k Kind) Holder(o *order.Order) (kernel.UUID, kernel.Role) {
	if k == Handover {
		return o.ProviderID(), kernel.ServiceProvider
	}
	return o.CustomerID(), kernel.Customer
}

// Gates returns the status a successful verification of kind k moves the order to.
func (k Kind) Gates() order.Status {
	switch k {
	case Pickup:
		return order.PickedUp
	case Handover:
		return order.OutForDelivery
	case Delivery:
		return order.Delivered
	default:
		return order.Unknown
	}
}
