// Package record parses one logical record of delimited text (CSV or TSV)
// into an ordered list of field values.
//
// The package is record-oriented: it does not split a stream into records.
// RFC 4180 allows unescaped line breaks inside quoted fields, so a caller
// that naively splits its input on newlines will lose those internal line
// breaks; reconstructing one complete logical record per call is the
// caller's responsibility. Writing records back out and mapping records to
// structs are likewise out of scope.
//
// Parsing behavior is controlled by a Dialect: the separator character, an
// optional quote character, an optional escape character, a substitute
// string for absent fields, whitespace trimming, and a choice between
// strict RFC 4180 quote-doubling and a lenient "single-quote" discipline
// that tolerates unescaped internal quotes.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. A Dialect is immutable once constructed and may be shared by
// arbitrarily many concurrent Parse calls; each call keeps its scan state
// on its own stack.
//
//	d := record.CSV()
//	go func() { d.Parse(record1) }()
//	go func() { d.Parse(record2) }()
//
// # Example usage
//
//	fields, err := record.CSV().Parse(`"a,b",c`)
//	if err != nil {
//	    // handle error
//	}
//	// fields is []string{"a,b", "c"}
package record

// defaultDialect backs the package-level convenience functions. Dialects
// are immutable, so sharing one is safe.
var defaultDialect = CSV()

// Parse parses one logical record with the RFC 4180 CSV preset.
//
// For custom separators, escaping, trimming, or the lenient single-quote
// discipline, construct a Dialect with NewDialect and call its Parse
// method instead.
func Parse(line string) ([]string, error) {
	return defaultDialect.Parse(line)
}

// Validate checks whether one logical record is well-formed under the
// RFC 4180 CSV preset.
//
// Returns nil if the record is valid. This is the idiomatic Go approach -
// check the error:
//
//	if err := record.Validate(line); err != nil {
//	    // malformed record
//	}
func Validate(line string) error {
	return defaultDialect.Validate(line)
}
