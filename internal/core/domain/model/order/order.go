package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// ChangeCutoff is how long before the pickup start a customer may still
	// cancel or reschedule the order.
	ChangeCutoff = time.Hour

	// DefaultDeliveryOffset shifts the pickup window into the delivery window
	// when the customer does not choose one.
	DefaultDeliveryOffset = 48 * time.Hour
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// PaymentStatus tracks settlement of the invoice.
type PaymentStatus int

const (
	Unpaid PaymentStatus = iota
	Paid
)

func (p PaymentStatus) String() string {
	if p == Paid {
		return "PAID"
	}
	return "UNPAID"
}

// AppliedPromotion is the promotion a customer redeemed on the order.
type AppliedPromotion struct {
	PromotionID kernel.UUID
	Code        string
	Discount    decimal.Decimal
}

// Order is the aggregate root of the fulfillment lifecycle. It owns the status,
// the append-only status history, the priced items and the bill.
//
// Order follows these invariants:
//   - history is non-empty, starts at Pending and every consecutive pair is an edge
//   - the current status equals the status of the last history entry
//   - the final amount is never negative
//   - at most one promotion is applied, and only before the bill is finalized
//   - an agent is assigned from AcceptedByAgent onward
//
// Every mutation records a StatusChangedEvent that the unit of work stores in the outbox.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	providerID kernel.UUID

	// agentID is nil until a delivery agent accepts the order
	agentID *kernel.UUID

	items    []*LineItem
	pickup   kernel.TimeWindow
	delivery kernel.TimeWindow

	status  Status
	history []StatusEntry

	promotion *AppliedPromotion
	totals    Totals

	invoiceNumber    string
	paymentStatus    PaymentStatus
	paymentReference string

	createdAt time.Time

	// version is the optimistic concurrency token read from storage
	version int

	events []kernel.DomainEvent

	isConstructed bool
}

// NewOrder places a new order in Pending status.
//
// Parameters:
//   - id: order identifier
//   - by: the customer placing the order
//   - providerID: the service provider chosen by the customer
//   - items: priced line items (at least one)
//   - pickup: pickup slot, must start after now
//   - delivery: delivery slot; nil defaults to pickup shifted by DefaultDeliveryOffset
//   - pricing: tax rate and delivery charge in force
//   - idempotencyKey: key of the creating request, stored on the first history entry
//   - now: creation instant
//
// Returns:
//   - *Order: the created order
//   - error: ActorNotAuthorizedError when by is not a customer, joined validation errors otherwise
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customer, providerID, items, pickup, nil,
//	    order.DefaultPricingPolicy(), key, time.Now())
func NewOrder(
	id kernel.UUID,
	by kernel.Actor,
	providerID kernel.UUID,
	items []*LineItem,
	pickup kernel.TimeWindow,
	delivery *kernel.TimeWindow,
	pricing PricingPolicy,
	idempotencyKey string,
	now time.Time,
) (*Order, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	if by.Role() != kernel.Customer {
		return nil, by.NotAuthorized("create order")
	}

	o := &Order{
		customerID:    by.ID(),
		status:        Pending,
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setProviderID(providerID),
		o.setItems(items),
		o.setWindows(pickup, delivery, now),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}

	o.totals = ComputeTotals(o.items, pricing, decimal.Zero)
	o.history = []StatusEntry{{
		Status:         Pending,
		At:             now.UTC(),
		ActorID:        by.ID(),
		IdempotencyKey: idempotencyKey,
	}}
	o.raiseStatusChanged(Unknown, by.ID(), now)

	return o, nil
}

// State is the persisted form of an Order. Repositories fill it from storage
// and pass it to RestoreOrder.
type State struct {
	ID               kernel.UUID
	CustomerID       kernel.UUID
	ProviderID       kernel.UUID
	AgentID          *kernel.UUID
	Items            []*LineItem
	Pickup           kernel.TimeWindow
	Delivery         kernel.TimeWindow
	Status           Status
	History          []StatusEntry
	Promotion        *AppliedPromotion
	Totals           Totals
	InvoiceNumber    string
	PaymentStatus    PaymentStatus
	PaymentReference string
	CreatedAt        time.Time
	Version          int
}

// RestoreOrder rebuilds an order from storage without re-running creation rules.
// It still rejects states that break the aggregate invariants.
func RestoreOrder(s State) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.CustomerID.Validate(),
		s.ProviderID.Validate(),
		s.Status.Validate(),
		s.Pickup.Validate(),
		s.Delivery.Validate(),
	); err != nil {
		return nil, err
	}
	if len(s.Items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if !ValidateHistory(s.History) {
		return nil, errs.NewValueIsInvalidError("status history")
	}
	if last := s.History[len(s.History)-1].Status; last != s.Status {
		return nil, errs.NewValueIsInvalidErrorWithCause("status history",
			fmt.Errorf("last entry is %s, order is %s", last, s.Status))
	}

	return &Order{
		id:               s.ID,
		customerID:       s.CustomerID,
		providerID:       s.ProviderID,
		agentID:          s.AgentID,
		items:            s.Items,
		pickup:           s.Pickup,
		delivery:         s.Delivery,
		status:           s.Status,
		history:          s.History,
		promotion:        s.Promotion,
		totals:           s.Totals,
		invoiceNumber:    s.InvoiceNumber,
		paymentStatus:    s.PaymentStatus,
		paymentReference: s.PaymentReference,
		createdAt:        s.CreatedAt,
		version:          s.Version,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) ProviderID() kernel.UUID {
	return o.providerID
}

// AgentID returns the assigned delivery agent, nil before AcceptedByAgent.
func (o *Order) AgentID() *kernel.UUID {
	return o.agentID
}

// Items returns a copy of the line items slice.
func (o *Order) Items() []*LineItem {
	items := make([]*LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Pickup() kernel.TimeWindow {
	return o.pickup
}

func (o *Order) Delivery() kernel.TimeWindow {
	return o.delivery
}

func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the status history, oldest first.
func (o *Order) History() []StatusEntry {
	history := make([]StatusEntry, len(o.history))
	copy(history, o.history)
	return history
}

// HasReached reports whether the order has ever been in status s.
func (o *Order) HasReached(s Status) bool {
	for _, entry := range o.history {
		if entry.Status == s {
			return true
		}
	}
	return false
}

// Promotion returns the applied promotion, nil when none was applied.
func (o *Order) Promotion() *AppliedPromotion {
	return o.promotion
}

func (o *Order) Totals() Totals {
	return o.totals
}

// InvoiceNumber is empty until the order is ready for delivery.
func (o *Order) InvoiceNumber() string {
	return o.invoiceNumber
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) PaymentReference() string {
	return o.paymentReference
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the concurrency token the order was loaded with.
func (o *Order) Version() int {
	return o.version
}

// IsParticipant reports whether the actor is the customer, the provider or
// the assigned agent of the order.
func (o *Order) IsParticipant(by kernel.Actor) bool {
	if by.Is(kernel.Customer, o.customerID) || by.Is(kernel.ServiceProvider, o.providerID) {
		return true
	}
	return o.agentID != nil && by.Is(kernel.DeliveryAgent, *o.agentID)
}

// IsRetry reports whether a request moving the order to target with
// idempotencyKey was already applied: the order is in target and the last
// history entry was produced by the same key and actor.
//
// Handlers call it before any other check and answer a retry with success.
func (o *Order) IsRetry(target Status, by kernel.Actor, idempotencyKey string) bool {
	if idempotencyKey == "" || o.status != target || len(o.history) == 0 {
		return false
	}
	last := o.history[len(o.history)-1]
	return last.IdempotencyKey == idempotencyKey && last.ActorID.IsEqual(by.ID())
}

// CheckTransition validates a move to target without changing the order.
// The state is checked first, then the actor's role and ownership.
//
// Handlers of OTP-gated transitions call it before consuming the OTP, so a
// code is never spent on a request that would fail anyway.
//
// Returns:
//   - TransitionNotAllowedError when target is not reachable from the current status
//   - ActorNotAuthorizedError when by may not perform the transition on this order
func (o *Order) CheckTransition(target Status, by kernel.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return errs.NewTransitionNotAllowedError(o.status.String(), target.String())
	}

	action := actionName(target)
	//nolint:exhaustive // remaining statuses are unreachable as targets
	switch target {
	case AcceptedByProvider, Rejected, PickedUp, InCleaning, ReadyForDelivery:
		if !by.Is(kernel.ServiceProvider, o.providerID) {
			return by.NotAuthorized(action)
		}
	case Cancelled, Rescheduled:
		if !by.Is(kernel.Customer, o.customerID) {
			return by.NotAuthorized(action)
		}
	case AcceptedByAgent:
		if by.Role() != kernel.DeliveryAgent {
			return by.NotAuthorized(action)
		}
	case OutForDelivery, Delivered:
		if o.agentID == nil || !by.Is(kernel.DeliveryAgent, *o.agentID) {
			return by.NotAuthorized(action)
		}
	default:
		return errs.NewTransitionNotAllowedError(o.status.String(), target.String())
	}
	return nil
}

// Accept records the provider's acceptance.
func (o *Order) Accept(by kernel.Actor, idempotencyKey string, now time.Time) error {
	return o.transition(AcceptedByProvider, by, idempotencyKey, now)
}

// Reject records the provider's refusal. Rejected is terminal.
func (o *Order) Reject(by kernel.Actor, idempotencyKey string, now time.Time) error {
	return o.transition(Rejected, by, idempotencyKey, now)
}

// Cancel withdraws the order on behalf of its customer.
//
// Returns:
//   - TransitionNotAllowedError once the clothes were picked up or the order is closed
//   - ActorNotAuthorizedError for anyone but the owning customer
//   - WindowClosedError when now is later than ChangeCutoff before the pickup start
//
// Example:
//
//	// pickup at 10:00, now 09:30
//	err := o.Cancel(customer, key, now) // errors.Is(err, errs.ErrWindowClosed)
func (o *Order) Cancel(by kernel.Actor, idempotencyKey string, now time.Time) error {
	if err := o.CheckTransition(Cancelled, by); err != nil {
		return err
	}
	if err := o.checkChangeCutoff("cancel", now); err != nil {
		return err
	}
	o.apply(Cancelled, by, idempotencyKey, now)
	return nil
}

// Reschedule moves the pickup (and delivery) slot. The order goes to
// Rescheduled and waits for the provider's decision again.
//
// Parameters:
//   - pickup: new pickup slot, must start after now
//   - delivery: new delivery slot; nil shifts the new pickup by DefaultDeliveryOffset
//
// Returns the same errors as Cancel plus validation errors of the new windows.
func (o *Order) Reschedule(
	pickup kernel.TimeWindow,
	delivery *kernel.TimeWindow,
	by kernel.Actor,
	idempotencyKey string,
	now time.Time,
) error {
	if err := o.CheckTransition(Rescheduled, by); err != nil {
		return err
	}
	if err := o.checkChangeCutoff("reschedule", now); err != nil {
		return err
	}
	if err := o.setWindows(pickup, delivery, now); err != nil {
		return err
	}
	o.apply(Rescheduled, by, idempotencyKey, now)
	return nil
}

// MarkPickedUp records the pickup. The caller has verified the PICKUP OTP.
func (o *Order) MarkPickedUp(by kernel.Actor, idempotencyKey string, now time.Time) error {
	return o.transition(PickedUp, by, idempotencyKey, now)
}

// MarkInCleaning records that processing started.
func (o *Order) MarkInCleaning(by kernel.Actor, idempotencyKey string, now time.Time) error {
	return o.transition(InCleaning, by, idempotencyKey, now)
}

// MarkReadyForDelivery finishes cleaning and finalizes the bill: the invoice
// number is assigned and the totals are frozen from here on.
func (o *Order) MarkReadyForDelivery(by kernel.Actor, idempotencyKey string, now time.Time) error {
	if err := o.CheckTransition(ReadyForDelivery, by); err != nil {
		return err
	}
	o.invoiceNumber = invoiceNumber(o.id, now)
	o.apply(ReadyForDelivery, by, idempotencyKey, now)
	return nil
}

// AcceptDelivery assigns the calling delivery agent. Availability and
// schedule conflicts are checked by services.DeliveryEligibility beforehand.
func (o *Order) AcceptDelivery(by kernel.Actor, idempotencyKey string, now time.Time) error {
	if err := o.CheckTransition(AcceptedByAgent, by); err != nil {
		return err
	}
	agentID := by.ID()
	o.agentID = &agentID
	o.apply(AcceptedByAgent, by, idempotencyKey, now)
	return nil
}

// ConfirmHandover records that the agent received the clothes from the provider.
// The caller has verified the HANDOVER OTP.
func (o *Order) ConfirmHandover(by kernel.Actor, idempotencyKey string, now time.Time) error {
	return o.transition(OutForDelivery, by, idempotencyKey, now)
}

// ConfirmDelivery records that the customer received the order.
// The caller has verified the DELIVERY OTP.
func (o *Order) ConfirmDelivery(by kernel.Actor, idempotencyKey string, now time.Time) error {
	return o.transition(Delivered, by, idempotencyKey, now)
}

// PromotionBlocker returns why no promotion can be applied to the order,
// or "" when one can.
func (o *Order) PromotionBlocker() string {
	switch {
	case o.promotion != nil:
		return "promotion already applied"
	case o.status.IsTerminal():
		return "order is closed"
	case o.status.IsBillFinalized():
		return "bill already finalized"
	default:
		return ""
	}
}

// ApplyPromotion redeems a promotion and recomputes the totals.
// The discount is clamped to the subtotal, so the final amount stays non-negative.
//
// Returns:
//   - ActorNotAuthorizedError for anyone but the owning customer
//   - ConflictError with the PromotionBlocker reason when a promotion cannot be applied
func (o *Order) ApplyPromotion(promotion AppliedPromotion, by kernel.Actor) error {
	if !by.Is(kernel.Customer, o.customerID) {
		return by.NotAuthorized("apply promotion")
	}
	if reason := o.PromotionBlocker(); reason != "" {
		return errs.NewConflictError(reason)
	}
	if err := promotion.PromotionID.Validate(); err != nil {
		return err
	}
	if promotion.Discount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discount is invalid", fmt.Errorf("%s is negative", promotion.Discount))
	}

	o.totals = o.totals.WithDiscount(promotion.Discount)
	promotion.Discount = o.totals.Discount
	o.promotion = &promotion
	return nil
}

// RecordPayment marks the invoice paid. Recording the same reference twice is a no-op.
//
// Returns:
//   - ConflictError when the bill is not invoiced yet or was paid with another reference
//   - ValueIsRequiredError for an empty reference
func (o *Order) RecordPayment(reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("payment reference")
	}
	if o.invoiceNumber == "" {
		return errs.NewConflictError("bill is not invoiced")
	}
	if o.paymentStatus == Paid {
		if o.paymentReference == reference {
			return nil
		}
		return errs.NewConflictError("bill already paid")
	}
	o.paymentStatus = Paid
	o.paymentReference = reference
	return nil
}

// DomainEvents returns events recorded since the order was loaded.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return o.events
}

// ClearDomainEvents drops recorded events once they reached the outbox.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) transition(target Status, by kernel.Actor, idempotencyKey string, now time.Time) error {
	if err := o.CheckTransition(target, by); err != nil {
		return err
	}
	o.apply(target, by, idempotencyKey, now)
	return nil
}

func (o *Order) apply(target Status, by kernel.Actor, idempotencyKey string, now time.Time) {
	from := o.status
	o.status = target
	o.history = append(o.history, StatusEntry{
		Status:         target,
		At:             now.UTC(),
		ActorID:        by.ID(),
		IdempotencyKey: idempotencyKey,
	})
	o.raiseStatusChanged(from, by.ID(), now)
}

func (o *Order) raiseStatusChanged(from Status, actorID kernel.UUID, now time.Time) {
	eventID := kernel.NewUUID()
	e := StatusChangedEvent{
		ID:          eventID.String(),
		OrderID:     o.id.String(),
		CustomerID:  o.customerID.String(),
		ProviderID:  o.providerID.String(),
		To:          o.status.String(),
		ActorID:     actorID.String(),
		At:          now.UTC(),
		eventID:     eventID,
		aggregateID: o.id,
	}
	if from != Unknown {
		e.From = from.String()
	}
	if o.agentID != nil {
		e.AgentID = o.agentID.String()
	}
	o.events = append(o.events, e)
}

func (o *Order) checkChangeCutoff(action string, now time.Time) error {
	deadline := o.pickup.Start().Add(-ChangeCutoff)
	if now.After(deadline) {
		return errs.NewWindowClosedError(action, deadline)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProviderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("provider", err)
	}
	o.providerID = id
	return nil
}

func (o *Order) setItems(items []*LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("item %d", i), err)
		}
	}
	o.items = make([]*LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setWindows(pickup kernel.TimeWindow, delivery *kernel.TimeWindow, now time.Time) error {
	if err := pickup.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup window", err)
	}
	if !pickup.Start().After(now) {
		return errs.NewValueIsInvalidErrorWithCause("pickup window",
			fmt.Errorf("starts at %s which is not in the future", pickup.Start().Format(time.RFC3339)))
	}

	d := pickup.Shift(DefaultDeliveryOffset)
	if delivery != nil {
		if err := delivery.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("delivery window", err)
		}
		d = *delivery
	}
	if d.Start().Before(pickup.End()) {
		return errs.NewValueIsInvalidErrorWithCause("delivery window",
			fmt.Errorf("starts at %s before pickup ends", d.Start().Format(time.RFC3339)))
	}

	o.pickup = pickup
	o.delivery = d
	return nil
}

func actionName(target Status) string {
	//nolint:exhaustive // only transition targets have actions
	switch target {
	case AcceptedByProvider:
		return "accept order"
	case Rejected:
		return "reject order"
	case Cancelled:
		return "cancel order"
	case Rescheduled:
		return "reschedule order"
	case PickedUp:
		return "mark picked up"
	case InCleaning:
		return "mark in cleaning"
	case ReadyForDelivery:
		return "mark ready for delivery"
	case AcceptedByAgent:
		return "accept delivery"
	case OutForDelivery:
		return "confirm handover"
	case Delivered:
		return "confirm delivery"
	default:
		return "change status to " + target.String()
	}
}

// invoiceNumber renders INV-<yyyymmdd>-<first 8 hex digits of the order id>.
func invoiceNumber(id kernel.UUID, at time.Time) string {
	return fmt.Sprintf("INV-%s-%s", at.UTC().Format("20060102"), strings.ToUpper(id.String()[:8]))
}
