// Package apperr defines the sentinel errors shared across the application.
package apperr

import "errors"

var (
	// ErrNotFound indicates a missing row-store file or asset row.
	ErrNotFound = errors.New("not found")
	// ErrIncompatibleSchema indicates the row-store does not have the
	// table/column layout this tool understands.
	ErrIncompatibleSchema = errors.New("incompatible schema")
	// ErrBusy indicates the row-store stayed locked by another writer
	// after all retry attempts were exhausted.
	ErrBusy = errors.New("database busy")
	// ErrAutomation indicates a Photos automation (AppleScript) call failed.
	ErrAutomation = errors.New("automation error")
	// ErrExtractionTool indicates exiftool is missing, exited non-zero,
	// or produced an unparseable report.
	ErrExtractionTool = errors.New("extraction tool error")
	// ErrValidation indicates malformed operation input.
	ErrValidation = errors.New("validation error")
)
