// Package load persists typed product tables to the configured sinks.
package load

import (
	"errors"
	"fmt"
)

// Sink names used in errors and result slots.
const (
	SinkCSV      = "csv"
	SinkSheets   = "sheets"
	SinkPostgres = "postgres"
)

// Load errors.
var (
	ErrEmptyTable          = errors.New("product table is empty")
	ErrNoDestinations      = errors.New("at least one load destination must be enabled")
	ErrCredentialsNotFound = errors.New("credentials file not found")
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrMissingConnParam    = errors.New("missing required connection parameter")
	ErrUnknownWritePolicy  = errors.New("unknown write policy")
)

// Error is the uniform failure type every sink returns. It names the sink
// and preserves the underlying cause.
type Error struct {
	Sink string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s sink: %v", e.Sink, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// sinkErr wraps a failure into the uniform load error for a sink.
func sinkErr(sink string, err error) error {
	return &Error{Sink: sink, Err: err}
}

// sinkErrf wraps a formatted failure into the uniform load error.
func sinkErrf(sink string, format string, args ...any) error {
	return &Error{Sink: sink, Err: fmt.Errorf(format, args...)}
}
