// Package errs provides standardized error types for the courier bridge.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes the error types the orchestration needs:
//   - ValueIsRequiredError: a required value (address, key, order id) is missing
//   - ValueIsInvalidError: a value is present but cannot be used
//   - ObjectNotFoundError: a reservation, order or fulfillment order cannot be found
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on it
package errs
