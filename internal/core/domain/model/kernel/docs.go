// Package kernel provides domain primitives shared by all aggregates of the
// laundry marketplace.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - TimeWindow: half-open interval used for pickup and delivery slots
//   - Actor and Role: the request-scoped caller every command is executed for
//   - DomainEvent and EventSource: contracts for events recorded by aggregates
//
// All primitives are immutable values whose zero value fails Validate.
package kernel
