package order

import (
	"fmt"
	"slices"

	"laundry/internal/pkg/errs"
)

// Status represents the lifecycle state of a laundry order.
// It is a closed enumeration; every change of status goes through TransitionTo,
// which checks the edge against a single transition table.
//
// State transitions:
//
//	Pending ──┬──> AcceptedByProvider ──> PickedUp ──> InCleaning ──> ReadyForDelivery
//	          │          │    │                                             │
//	          │          │    └──> Cancelled*                               v
//	          ├──> Rejected*                                        AcceptedByAgent
//	          ├──> Cancelled*                                               │
//	          └──> Rescheduled ──(behaves as Pending)                       v
//	                                                    Delivered* <── OutForDelivery
//
// Terminal statuses (*) accept no further transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; the order waits for the provider's decision.
	Pending

	// AcceptedByProvider means the provider agreed to clean the order and will collect it.
	AcceptedByProvider

	// PickedUp means the provider collected the clothes after a PICKUP OTP check.
	PickedUp

	// InCleaning means the provider is processing the order.
	InCleaning

	// ReadyForDelivery means cleaning is finished, the bill is invoiced and
	// a HANDOVER OTP has been issued. Delivery agents may now accept the order.
	ReadyForDelivery

	// AcceptedByAgent means a delivery agent committed to deliver the order.
	AcceptedByAgent

	// OutForDelivery means the agent received the clothes after a HANDOVER OTP check.
	OutForDelivery

	// Delivered is terminal: the customer received the order after a DELIVERY OTP check.
	Delivered

	// Rejected is terminal: the provider declined the order.
	Rejected

	// Cancelled is terminal: the customer withdrew the order before pickup.
	Cancelled

	// Rescheduled means the customer moved the pickup slot. The order waits for
	// the provider's decision again, exactly like Pending.
	Rescheduled
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "UNKNOWN",
		Pending:            "PENDING",
		AcceptedByProvider: "ACCEPTED_BY_PROVIDER",
		PickedUp:           "PICKED_UP",
		InCleaning:         "IN_CLEANING",
		ReadyForDelivery:   "READY_FOR_DELIVERY",
		AcceptedByAgent:    "ACCEPTED_BY_AGENT",
		OutForDelivery:     "OUT_FOR_DELIVERY",
		Delivered:          "DELIVERED",
		Rejected:           "REJECTED",
		Cancelled:          "CANCELLED",
		Rescheduled:        "RESCHEDULED",
	}
}

// getTransitions returns the edge table of the state machine.
// A status missing from the map is terminal.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Pending:            {AcceptedByProvider, Rejected, Cancelled, Rescheduled},
		Rescheduled:        {AcceptedByProvider, Rejected, Cancelled, Rescheduled},
		AcceptedByProvider: {PickedUp, Cancelled, Rescheduled},
		PickedUp:           {InCleaning},
		InCleaning:         {ReadyForDelivery},
		ReadyForDelivery:   {AcceptedByAgent},
		AcceptedByAgent:    {OutForDelivery},
		OutForDelivery:     {Delivered},
	}
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		Pending, AcceptedByProvider, PickedUp, InCleaning, ReadyForDelivery,
		AcceptedByAgent, OutForDelivery, Delivered, Rejected, Cancelled, Rescheduled,
	}
}

// StatusFromString parses a wire name such as "READY_FOR_DELIVERY".
//
// Returns:
//   - the matching Status
//   - ValueIsInvalidError for unknown names, including "UNKNOWN"
func StatusFromString(s string) (Status, error) {
	for _, status := range Statuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the declared statuses.
//
// Returns:
//   - nil if the status is valid
//   - ValueIsInvalidError for Unknown (0) and any undeclared value
//
// Used when statuses come from external sources (database rows, query parameters).
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
//
// Example:
//
//	fmt.Println(order.Status()) // Output: "ACCEPTED_BY_PROVIDER"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected || s == Cancelled
}

// IsAwaitingProvider reports whether the provider still has to accept or reject.
func (s Status) IsAwaitingProvider() bool {
	return s == Pending || s == Rescheduled
}

// IsBeforePickup reports whether the clothes are still with the customer,
// which is the only period in which the order may be cancelled or rescheduled.
func (s Status) IsBeforePickup() bool {
	return s == Pending || s == Rescheduled || s == AcceptedByProvider
}

// IsBillFinalized reports whether the invoice has been issued,
// after which the totals are frozen.
func (s Status) IsBillFinalized() bool {
	return s == ReadyForDelivery || s == AcceptedByAgent || s == OutForDelivery || s == Delivered
}

// CanTransitionTo reports whether s -> to is an edge of the state machine.
func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(getTransitions()[s], to)
}

// TransitionTo performs the status transition s -> to.
//
// Returns:
//   - (to, nil) if the edge exists
//   - (Unknown, TransitionNotAllowedError) otherwise, including any transition
//     out of a terminal status
//
// Example:
//
//	next, err := current.TransitionTo(order.PickedUp)
//	if err != nil {
//	    // errors.Is(err, errs.ErrTransitionNotAllowed)
//	}
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewTransitionNotAllowedError(s.String(), to.String())
	}
	return to, nil
}
