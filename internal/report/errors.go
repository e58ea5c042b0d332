package report

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSection is returned for a section key with no registry
	// entry.
	ErrUnknownSection = errors.New("unknown report section")

	// ErrEmptyExport is returned by exporters that refuse a zero-row
	// dataset.
	ErrEmptyExport = errors.New("no rows to export")
)

// UnsupportedCodeError is returned when an engine is handed a report
// code it does not own.
type UnsupportedCodeError struct {
	Engine string
	Code   Code
}

func (e *UnsupportedCodeError) Error() string {
	return fmt.Sprintf("%s engine does not own report code %q", e.Engine, e.Code)
}

// RenderError wraps a failure from a rendering backend so callers can
// distinguish it from query or filesystem failures.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s render failed: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
