// Package errs provides standardized error types for the carrierlink application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes one error type per error kind the core reports:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced entity does not exist
//   - ForbiddenError: the actor lacks the relationship the action requires
//   - InvalidTransitionError, InvalidStateError: the lifecycle state does not allow the action
//   - ConflictError: a uniqueness rule was violated
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the kind
//
// Validation failures are usually combined with errors.Join; FieldErrors
// flattens such a tree into the {field, message} pairs returned to callers.
package errs
