// Package order provides the Order aggregate of the laundry marketplace and the
// state machine that drives it from booking to delivery.
//
// The package includes:
//   - Order: the aggregate root holding items, slots, status history and the bill
//   - Status: the closed status enumeration with a single transition table
//   - LineItem, Totals, PricingPolicy: pricing of the bill
//   - StatusChangedEvent: the event recorded on every transition
//
// Key business rules:
//   - the provider accepts or rejects a pending (or rescheduled) order
//   - the customer may cancel or reschedule until one hour before pickup
//   - pickup, handover and delivery are confirmed by OTP outside of this package
//   - the bill is invoiced when the order becomes ready for delivery and is frozen afterwards
//   - a retried request (same idempotency key) is recognized through IsRetry
package order
