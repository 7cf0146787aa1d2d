// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package carries two groups of errors:
//   - Value-level validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError)
//   - The domain taxonomy returned by engine operations (InvalidStateError,
//     DuplicateBidError, UnauthorizedError, HandoverRejectedError,
//     ValidationLockedError, PeriodAlreadyOpenError, ConflictError)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidState)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// ConflictError is the only error in the taxonomy that callers are expected
// to retry automatically; everything else requires caller or user intervention.
package errs
