// Package otp implements the one-time passcodes that gate physical handoffs of
// an order: pickup from the customer, handover from provider to agent and
// delivery back to the customer.
//
// A Challenge stores only a bcrypt hash of its six-digit code, expires after
// ten minutes and can be consumed once. Expiry is evaluated lazily when a code
// is verified.
package otp
