// Package errs provides standardized error types for the laundry order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - VersionIsInvalidError: For optimistic concurrency conflicts
//   - TransitionNotAllowedError: For order status changes the current status forbids
//   - ActorNotAuthorizedError: For callers whose role or identity does not fit an operation
//   - ConflictError: For writes colliding with existing state (availability, promotions)
//   - WindowClosedError: For actions attempted after their deadline
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
//
// The HTTP adapter maps sentinels to status codes; domain code never
// depends on transport concerns.
package errs
