// Package record provides dialect configuration for record parsing.
package record

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-record/internal/scanner"
)

// Char optionally selects a dialect character. The zero Char is disabled:
// a disabled Char never matches any input character, which is how a
// dialect turns quoting or escaping off entirely. There is no in-band
// sentinel character, so any rune may be configured as a separator, quote,
// or escape.
type Char struct {
	r  rune
	ok bool
}

// NewChar returns an enabled Char selecting r.
func NewChar(r rune) Char {
	return Char{r: r, ok: true}
}

// NoChar returns a disabled Char. It is equivalent to the zero value.
func NoChar() Char {
	return Char{}
}

// Enabled reports whether the Char selects a character.
func (c Char) Enabled() bool { return c.ok }

// Rune returns the selected character. The second result is false when the
// Char is disabled, in which case the rune is meaningless.
func (c Char) Rune() (rune, bool) { return c.r, c.ok }

// Dialect is an immutable parsing configuration. Construct one with
// NewDialect or a preset factory and share it freely; a Dialect is never
// mutated by Parse.
type Dialect struct {
	separator   rune
	quote       Char
	escape      Char
	empty       string
	trim        bool
	singleQuote bool
}

// NewDialect returns a Dialect with the given settings, verbatim and
// unvalidated. Callers may pick any combination, including disabling the
// quote or escape entirely.
//
//   - separator: the field delimiter. Comma for CSV, tab for TSV.
//   - quote: optional character delimiting fields that may contain
//     separators or literal line breaks. Normally '"'.
//   - escape: optional non-RFC extension; the character following an
//     escape is taken literally, inside or outside quoted fields. A
//     popular choice is '\\'.
//   - empty: substitute for absent fields. Only a zero-length unquoted
//     field is absent; a quoted empty field ("") parses to the literal
//     empty string, so the two are distinguishable whenever empty is not
//     itself "".
//   - trim: strip leading and trailing characters with code point <= 0x20
//     from every field value.
//   - singleQuote: tolerate unescaped internal quotes in quoted fields,
//     e.g. ["My name is "John""]. The closing quote is recognized when
//     followed by the separator or the end of the record. A side effect of
//     this format is that an internal quote cannot be directly followed by
//     a separator unless the separator is escaped.
func NewDialect(separator rune, quote, escape Char, empty string, trim, singleQuote bool) *Dialect {
	return &Dialect{
		separator:   separator,
		quote:       quote,
		escape:      escape,
		empty:       empty,
		trim:        trim,
		singleQuote: singleQuote,
	}
}

// CSV returns the RFC 4180 preset: comma separator, double-quote quoting,
// no escape, empty string for absent fields, no trimming, strict
// quote-doubling.
func CSV() *Dialect {
	return NewDialect(',', NewChar('"'), NoChar(), "", false, false)
}

// TSV returns the IANA-standard TSV preset: tab separator with quoting and
// escaping disabled.
func TSV() *Dialect {
	return NewDialect('\t', NoChar(), NoChar(), "", false, false)
}

// Parse parses one logical record into its ordered field values.
//
// The record must already be fully materialized: a quoted field may contain
// a literal newline, so the caller is responsible for reconstructing the
// complete record before calling Parse. On malformed input Parse returns a
// *ParseError carrying the 0-based rune offset of the violation; no partial
// field list is returned.
//
// An empty record parses to zero fields, not one empty field.
func (d *Dialect) Parse(line string) ([]string, error) {
	fields, serr := scanner.Scan(d.config(), line)
	if serr != nil {
		return nil, &ParseError{Offset: serr.Offset, Err: serr.Err}
	}
	return fields, nil
}

// Validate checks whether one logical record is well-formed under the
// dialect. It parses and discards the fields.
func (d *Dialect) Validate(line string) error {
	_, err := d.Parse(line)
	return err
}

// String renders the dialect's settings for diagnostics. Enabled
// characters are shown as hexadecimal code points and disabled characters
// are omitted. Informational only; the format is not a contract.
func (d *Dialect) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dialect{separator=0x%x", d.separator)
	if r, ok := d.quote.Rune(); ok {
		fmt.Fprintf(&b, ", quote=0x%x", r)
	}
	if r, ok := d.escape.Rune(); ok {
		fmt.Fprintf(&b, ", escape=0x%x", r)
	}
	fmt.Fprintf(&b, ", empty=%q, trim=%t, singleQuote=%t}", d.empty, d.trim, d.singleQuote)
	return b.String()
}

// config translates the dialect into the scanner's settings.
func (d *Dialect) config() scanner.Config {
	cfg := scanner.Config{
		Separator:   d.separator,
		Empty:       d.empty,
		Trim:        d.trim,
		SingleQuote: d.singleQuote,
	}
	cfg.Quote, cfg.HasQuote = d.quote.Rune()
	cfg.Escape, cfg.HasEscape = d.escape.Rune()
	return cfg
}
