package scanner

import (
	"errors"
	"reflect"
	"testing"
)

// csvConfig is the RFC 4180 preset: comma separator, double-quote quoting,
// no escape, quote doubling.
func csvConfig() Config {
	return Config{Separator: ',', Quote: '"', HasQuote: true}
}

// tsvConfig is the TSV preset: tab separator, quoting disabled.
func tsvConfig() Config {
	return Config{Separator: '\t'}
}

func TestScan(t *testing.T) {
	escaped := csvConfig()
	escaped.Escape, escaped.HasEscape = '\\', true

	single := csvConfig()
	single.SingleQuote = true

	trimmed := csvConfig()
	trimmed.Trim = true

	nullable := csvConfig()
	nullable.Empty = "<NULL>"

	tests := []struct {
		name  string
		cfg   Config
		input string
		want  []string
	}{
		{
			name:  "simple fields",
			cfg:   csvConfig(),
			input: "a,b,c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "empty record yields zero fields",
			cfg:   csvConfig(),
			input: "",
			want:  []string{},
		},
		{
			name:  "absent middle field",
			cfg:   csvConfig(),
			input: "a,,c",
			want:  []string{"a", "", "c"},
		},
		{
			name:  "trailing separator yields trailing field",
			cfg:   csvConfig(),
			input: "a,",
			want:  []string{"a", ""},
		},
		{
			name:  "lone separator yields two fields",
			cfg:   csvConfig(),
			input: ",",
			want:  []string{"", ""},
		},
		{
			name:  "quoted separator is data",
			cfg:   csvConfig(),
			input: `"a,b",c`,
			want:  []string{"a,b", "c"},
		},
		{
			name:  "doubled quote collapses",
			cfg:   csvConfig(),
			input: `"a""b",c`,
			want:  []string{`a"b`, "c"},
		},
		{
			name:  "quoted empty field is literal empty string",
			cfg:   csvConfig(),
			input: `""`,
			want:  []string{""},
		},
		{
			name:  "newline inside quoted field is data",
			cfg:   csvConfig(),
			input: "\"a\nb\",c",
			want:  []string{"a\nb", "c"},
		},
		{
			name:  "rfc tolerates text after closed quote when requoted",
			cfg:   csvConfig(),
			input: `"ab"x"`,
			want:  []string{`ab"x`},
		},
		{
			name:  "tsv treats quotes literally",
			cfg:   tsvConfig(),
			input: "\"a\"\tb",
			want:  []string{`"a"`, "b"},
		},
		{
			name:  "escaped separator is data",
			cfg:   escaped,
			input: `a\,b,c`,
			want:  []string{"a,b", "c"},
		},
		{
			name:  "escaped quote in unquoted field",
			cfg:   escaped,
			input: `a\"b,c`,
			want:  []string{`a"b`, "c"},
		},
		{
			name:  "escape at field start",
			cfg:   escaped,
			input: `\,a`,
			want:  []string{",a"},
		},
		{
			name:  "escaped escape",
			cfg:   escaped,
			input: `a\\b`,
			want:  []string{`a\b`},
		},
		{
			name:  "single quote mode internal quotes",
			cfg:   single,
			input: `"My name is "John"",x`,
			want:  []string{`My name is "John"`, "x"},
		},
		{
			name:  "single quote mode plain quoted field",
			cfg:   single,
			input: `"a","b"`,
			want:  []string{"a", "b"},
		},
		{
			name:  "single quote mode keeps doubled internal quotes",
			cfg:   single,
			input: `"a""b"`,
			want:  []string{`a""b`},
		},
		{
			name:  "single quote mode pending quote lands after escaped rune",
			cfg: func() Config {
				c := single
				c.Escape, c.HasEscape = '\\', true
				return c
			}(),
			input: `"a"\bc"`,
			want:  []string{`ab"c`},
		},
		{
			name:  "trim strips surrounding whitespace",
			cfg:   trimmed,
			input: " a , b ",
			want:  []string{"a", "b"},
		},
		{
			name:  "trim applies inside quotes",
			cfg:   trimmed,
			input: `"  a  ",b`,
			want:  []string{"a", "b"},
		},
		{
			name:  "trim of all-whitespace field yields empty string not empty value",
			cfg: func() Config {
				c := trimmed
				c.Empty = "<NULL>"
				return c
			}(),
			input: " , ",
			want:  []string{"", ""},
		},
		{
			name:  "empty value substitutes absent fields only",
			cfg:   nullable,
			input: `a,,""`,
			want:  []string{"a", "<NULL>", ""},
		},
		{
			name:  "empty value for trailing absent field",
			cfg:   nullable,
			input: "a,",
			want:  []string{"a", "<NULL>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scan(tt.cfg, tt.input)
			if err != nil {
				t.Fatalf("Scan(%q) error = %v, want fields %q", tt.input, err, tt.want)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	escaped := csvConfig()
	escaped.Escape, escaped.HasEscape = '\\', true

	tests := []struct {
		name       string
		cfg        Config
		input      string
		wantErr    error
		wantOffset int
	}{
		{
			name:       "unterminated quoted field",
			cfg:        csvConfig(),
			input:      `"abc,def`,
			wantErr:    ErrUnterminatedQuote,
			wantOffset: 8,
		},
		{
			name:       "lone quote",
			cfg:        csvConfig(),
			input:      `"`,
			wantErr:    ErrUnterminatedQuote,
			wantOffset: 1,
		},
		{
			name:       "quote opened then left dangling after internal text",
			cfg:        csvConfig(),
			input:      `"ab"x`,
			wantErr:    ErrUnterminatedQuote,
			wantOffset: 5,
		},
		{
			name:       "trailing escape",
			cfg:        escaped,
			input:      `abc\`,
			wantErr:    ErrTrailingEscape,
			wantOffset: 4,
		},
		{
			name:       "bare quote in unquoted field",
			cfg:        csvConfig(),
			input:      `ab"c`,
			wantErr:    ErrBareQuote,
			wantOffset: 2,
		},
		{
			name:       "bare quote with escape configured",
			cfg:        escaped,
			input:      `ab"c`,
			wantErr:    ErrBareQuote,
			wantOffset: 2,
		},
		{
			name:       "offsets count runes not bytes",
			cfg:        csvConfig(),
			input:      `é"x`,
			wantErr:    ErrBareQuote,
			wantOffset: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := Scan(tt.cfg, tt.input)
			if err == nil {
				t.Fatalf("Scan(%q) = %q, want error %v", tt.input, fields, tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Scan(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if err.Offset != tt.wantOffset {
				t.Errorf("Scan(%q) offset = %d, want %d", tt.input, err.Offset, tt.wantOffset)
			}
		})
	}
}

// TestScanBareQuoteMessages checks that the bare-quote message guides the
// caller toward escaping only when an escape is actually configured.
func TestScanBareQuoteMessages(t *testing.T) {
	_, err := Scan(csvConfig(), `ab"c`)
	if err == nil {
		t.Fatal("expected error for bare quote")
	}
	if got := err.Err.Error(); got != `unescaped quote inside non-quote-delimited field` {
		t.Errorf("no-escape message = %q", got)
	}

	escaped := csvConfig()
	escaped.Escape, escaped.HasEscape = '\\', true
	_, err = Scan(escaped, `ab"c`)
	if err == nil {
		t.Fatal("expected error for bare quote")
	}
	if got := err.Err.Error(); got != `quote inside non-quote-delimited field` {
		t.Errorf("with-escape message = %q", got)
	}
}

// TestScanDisabledQuote verifies a disabled quote can never be matched as a
// delimiter, whatever rune the input contains.
func TestScanDisabledQuote(t *testing.T) {
	cfg := Config{Separator: ','}
	got, err := Scan(cfg, `"a","b`)
	if err != nil {
		t.Fatalf("Scan error = %v", err)
	}
	want := []string{`"a"`, `"b`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %q, want %q", got, want)
	}
}

func TestErrorFormatting(t *testing.T) {
	err := &Error{Offset: 7, Err: ErrTrailingEscape}
	want := "parse error at offset 7: escape not followed by a character"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrTrailingEscape) {
		t.Error("Error does not unwrap to its sentinel")
	}
}
