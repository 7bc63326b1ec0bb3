// Package record provides error types for record parsing.
package record

import (
	"fmt"

	"github.com/shapestone/shape-record/internal/scanner"
)

// ParseError represents a parsing failure with position information.
type ParseError struct {
	// Offset is the 0-based rune offset at which the violation was
	// detected. An error raised by the end of the record reports the
	// record's rune length.
	Offset int
	// Err is the underlying error; it matches one of the sentinel errors
	// below under errors.Is.
	Err error
}

// Error returns a formatted message with the error's offset.
func (e *ParseError) Error() string {
	return fmt.Sprintf("record: parse error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// Sentinel errors for the three ways a record can be malformed. Parsing
// aborts on the first violation; there is no skip-and-continue mode, and
// malformed input is never silently reinterpreted as well-formed.
var (
	// ErrTrailingEscape indicates the record ended immediately after an
	// escape character.
	ErrTrailingEscape = scanner.ErrTrailingEscape

	// ErrUnterminatedQuote indicates a quote-opened field that never
	// reached a valid closing state before being finalized.
	ErrUnterminatedQuote = scanner.ErrUnterminatedQuote

	// ErrBareQuote indicates an unescaped quote inside a field that did
	// not open with a quote. The rendered message varies with whether the
	// dialect has an escape configured, to guide remediation.
	ErrBareQuote = scanner.ErrBareQuote
)
