// Package errs provides standardized error types for orderflow.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: for when an object cannot be found
//   - InvalidTransitionError: a status change the lifecycle graph forbids
//   - ConflictError: a conditional write that matched no row, or a duplicate identity
//   - UnavailableError: inventory cannot cover a requested quantity
//   - TransportError: a messaging transport failed to publish or consume
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Callers classify errors with errors.Is against the sentinels and never by
// inspecting message text.
package errs
