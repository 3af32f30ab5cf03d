package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the input holds no data at all.
	ErrEmptyInput = errors.New("parser: input is empty")

	// ErrNoTasks is returned when no row survives normalization.
	ErrNoTasks = errors.New("parser: no usable rows in input")

	// ErrUnsupportedFormat is returned for unrecognized input files.
	ErrUnsupportedFormat = errors.New("parser: unsupported input format")
)

// RowError describes why a single row was dropped. Row errors are
// never fatal: the row is skipped and processing continues.
type RowError struct {
	Row    int    // 1-based data row index
	Field  string // canonical field name, empty when the whole row is at fault
	Reason string
	Cause  error
}

func (e *RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d: field %s: %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

func (e *RowError) Unwrap() error { return e.Cause }
