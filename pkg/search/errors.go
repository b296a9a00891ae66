package search

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrInvalidPattern indicates a regex-mode pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrRead indicates the line source failed mid-scan.
	ErrRead = errors.New("read error")
)

// PatternError reports a pattern that could not be compiled.
type PatternError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrInvalidPattern, e.Pattern, e.Err)
}

// Unwrap exposes both ErrInvalidPattern and the underlying compile error.
func (e *PatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Err}
}

func readError(line int, err error) error {
	return fmt.Errorf("%w at line %d: %w", ErrRead, line, err)
}
