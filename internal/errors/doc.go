// Package errors defines sentinel error values for vault-files operations.
//
// Errors are grouped by concern: external dependencies, file discovery,
// and per-file transforms. Call sites wrap these sentinels with context
// using fmt.Errorf and the %w verb, so callers can classify failures with
// errors.Is while still surfacing a human-readable message.
package errors
