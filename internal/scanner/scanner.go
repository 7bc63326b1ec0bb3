// Package scanner implements the single-pass state machine that splits one
// logical delimited-text record into its fields.
//
// The scanner is record-oriented: it assumes the caller has already isolated
// one complete logical record. A quoted field may contain a literal newline,
// so splitting a stream into records is not something a line-oriented caller
// can do naively; reconstructing the record is the caller's job.
//
// Dispatch order in Scan is significant and must not be reordered: a pending
// escape wins over separator handling, which wins over the end sentinel,
// followed by the escape character, the quote character, and finally ordinary
// characters. Reordering changes observable results on ambiguous inputs such
// as an escaped separator versus an escaped quote.
package scanner

import (
	"errors"
	"fmt"
)

// state enumerates the scanner's per-field positions.
type state uint8

const (
	// stateFieldStart: nothing accumulated yet and the field is not
	// quote-opened. A field that closes in this state is absent and
	// resolves to the configured empty value.
	stateFieldStart state = iota
	// stateUnquoted: accumulating an unquoted field.
	stateUnquoted
	// stateQuoted: inside an open quoted field. Separators are data here.
	stateQuoted
	// stateQuoteInQuoted: a quote was seen inside a quoted field. It may be
	// closing the field or it may be literal text; the next character (or
	// the end sentinel) decides.
	stateQuoteInQuoted
	// stateAfterEscape: an escape was consumed; the next character is
	// literal data regardless of what it is.
	stateAfterEscape
)

// Config carries one dialect's scanner settings. A disabled quote or escape
// (HasQuote/HasEscape false) never matches any input character.
type Config struct {
	Separator   rune
	Quote       rune
	HasQuote    bool
	Escape      rune
	HasEscape   bool
	Empty       string
	Trim        bool
	SingleQuote bool
}

// Sentinel errors for the three ways a record can be malformed.
var (
	// ErrTrailingEscape reports a record that ends immediately after an
	// escape character.
	ErrTrailingEscape = errors.New("escape not followed by a character")
	// ErrUnterminatedQuote reports a quote-opened field that never reaches
	// a closing quote before the field is finalized.
	ErrUnterminatedQuote = errors.New("quoted field never closed")
	// ErrBareQuote reports an unescaped quote inside a field that did not
	// open with a quote.
	ErrBareQuote = errors.New("quote inside non-quote-delimited field")
)

// Error is a positioned scan failure.
type Error struct {
	// Offset is the 0-based rune offset at which the violation was
	// detected. The end sentinel reports the rune length of the record.
	Offset int
	// Err is one of the sentinel errors, possibly wrapped.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *Error) Unwrap() error { return e.Err }

// Scan splits one logical record into its ordered field values.
//
// The input is processed left to right, one rune at a time, with a synthetic
// end sentinel after the last rune to trigger final-field closure. Any
// violation aborts the scan; no partial field list is returned.
func Scan(cfg Config, line string) ([]string, *Error) {
	var (
		fields = make([]string, 0, 8)
		buf    []rune
		st     = stateFieldStart
		resume state // state restored after an escaped rune is consumed
	)

	// closeField resolves the accumulated field value and resets per-field
	// state. A field still inside an open quote cannot be closed.
	closeField := func(pos int) *Error {
		if st == stateQuoted {
			return &Error{Offset: pos, Err: ErrUnterminatedQuote}
		}
		switch {
		case st == stateFieldStart:
			fields = append(fields, cfg.Empty)
		case cfg.Trim:
			fields = append(fields, trim(buf))
		default:
			fields = append(fields, string(buf))
		}
		buf = buf[:0]
		st = stateFieldStart
		return nil
	}

	pos := 0
	for _, r := range line {
		switch {
		case st == stateAfterEscape:
			buf = append(buf, r)
			st = resume

		case r == cfg.Separator:
			if st == stateQuoted {
				// Separators inside an open quote are data.
				buf = append(buf, r)
				break
			}
			if err := closeField(pos); err != nil {
				return nil, err
			}

		case cfg.HasEscape && r == cfg.Escape:
			if st == stateFieldStart {
				resume = stateUnquoted
			} else {
				resume = st
			}
			st = stateAfterEscape

		case cfg.HasQuote && r == cfg.Quote:
			switch st {
			case stateQuoteInQuoted:
				if cfg.SingleQuote {
					// Two consecutive quotes, but this one may still be
					// closing the field. Emit the earlier quote and keep
					// this one pending.
					buf = append(buf, cfg.Quote)
				} else {
					// RFC 4180 doubling: the pair is one literal quote.
					buf = append(buf, cfg.Quote)
					st = stateQuoted
				}
			case stateFieldStart:
				st = stateQuoted
			case stateUnquoted:
				if cfg.HasEscape {
					return nil, &Error{Offset: pos, Err: ErrBareQuote}
				}
				return nil, &Error{Offset: pos, Err: fmt.Errorf("unescaped %w", ErrBareQuote)}
			default: // stateQuoted
				st = stateQuoteInQuoted
			}

		default:
			if st == stateQuoteInQuoted {
				// The pending quote was internal text after all.
				buf = append(buf, cfg.Quote)
				st = stateQuoted
			}
			buf = append(buf, r)
			if st == stateFieldStart {
				st = stateUnquoted
			}
		}
		pos++
	}

	// End sentinel.
	if st == stateAfterEscape {
		return nil, &Error{Offset: pos, Err: ErrTrailingEscape}
	}
	if len(buf) > 0 || len(fields) > 0 || st == stateQuoted || st == stateQuoteInQuoted {
		if err := closeField(pos); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// trim strips leading and trailing runes with code point <= 0x20. Field
// trimming is defined on code points, not unicode.IsSpace.
func trim(buf []rune) string {
	first, last := 0, len(buf)-1
	for first <= last && buf[first] <= 0x20 {
		first++
	}
	for first <= last && buf[last] <= 0x20 {
		last--
	}
	return string(buf[first : last+1])
}
