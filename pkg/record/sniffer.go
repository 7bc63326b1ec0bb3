// Package record provides dialect detection from samples of delimited text.
package record

import "strings"

// candidateSeparators are the separators the Sniffer considers, in
// preference order for ties.
var candidateSeparators = []rune{',', '\t', ';', '|'}

// Sniffer suggests a Dialect from a sample of delimited text. For best
// results provide two or three records; a single record works but gives
// the consistency heuristic nothing to compare against.
//
// Detection is informational only. A pathological sample can fool the
// heuristics, so callers that know their dialect should construct it
// directly with NewDialect.
type Sniffer struct {
	sample string
}

// NewSniffer creates a Sniffer over a sample of delimited text. The sample
// may contain several newline-separated records.
func NewSniffer(sample string) *Sniffer {
	return &Sniffer{sample: sample}
}

// Detect returns a suggested Dialect for the sample: the detected
// separator, double-quote quoting if the sample uses it, no escape, empty
// string for absent fields, no trimming, RFC quote-doubling.
func (s *Sniffer) Detect() *Dialect {
	quote := NoChar()
	if s.usesQuoting() {
		quote = NewChar('"')
	}
	return NewDialect(s.DetectSeparator(), quote, NoChar(), "", false, false)
}

// DetectSeparator returns the most plausible separator for the sample,
// chosen from comma, tab, semicolon, and pipe. It falls back to comma when
// the sample is empty or contains no candidate at all.
func (s *Sniffer) DetectSeparator() rune {
	lines := sampleLines(s.sample)
	if len(lines) == 0 {
		return ','
	}

	best, bestScore := ',', 0
	for _, sep := range candidateSeparators {
		score := separatorScore(lines, sep)
		if score > bestScore {
			best, bestScore = sep, score
		}
	}
	return best
}

// separatorScore scores a candidate separator: the unquoted occurrence
// count on the first line, multiplied when every line agrees. Consistent
// counts across lines are the strongest signal a character really is the
// separator rather than field text.
func separatorScore(lines []string, sep rune) int {
	first := countUnquoted(lines[0], sep)
	if first == 0 {
		return 0
	}
	for _, line := range lines[1:] {
		if countUnquoted(line, sep) != first {
			return first
		}
	}
	return first * 10
}

// countUnquoted counts occurrences of sep outside double-quoted sections.
func countUnquoted(line string, sep rune) int {
	count := 0
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			count++
		}
	}
	return count
}

// usesQuoting reports whether the sample appears to use double-quote field
// quoting: a quote at the start of the sample or directly after a
// candidate separator.
func (s *Sniffer) usesQuoting() bool {
	prev := rune('\n')
	for _, r := range s.sample {
		if r == '"' && isBoundary(prev) {
			return true
		}
		prev = r
	}
	return false
}

// isBoundary reports whether r can directly precede an opening quote.
func isBoundary(r rune) bool {
	if r == '\n' || r == '\r' {
		return true
	}
	for _, sep := range candidateSeparators {
		if r == sep {
			return true
		}
	}
	return false
}

// sampleLines splits the sample into non-empty lines.
func sampleLines(sample string) []string {
	var lines []string
	for _, line := range strings.Split(sample, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
