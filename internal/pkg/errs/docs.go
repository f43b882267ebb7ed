// Package errs provides standardized error types for the errands application.
//
// Every error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct carrying the details
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The sentinels double as the error kinds surfaced to callers. KindOf maps any
// wrapped error to one of NotFound, Forbidden, InvalidState, InsufficientFunds
// or ValidationError so the transport layer can translate it into a stable
// code/message pair without inspecting concrete types.
package errs
