// Package sanitize turns raw survey cells into optional numbers.
package sanitize

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Outcome classifies a sanitized cell.
type Outcome int

const (
	Valid Outcome = iota
	Empty
	Suppressed
	Unparsable
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case Empty:
		return "empty"
	case Suppressed:
		return "suppressed"
	default:
		return "unparsable"
	}
}

// DefaultTokens are the Census non-disclosure and not-applicable codes.
var DefaultTokens = []string{"S", "D", "X"}

// separators are stripped from numeric text before parsing.
var separators = strings.NewReplacer(
	",", "",
	" ", "",
	"\u00a0", "",
	"\u2009", "",
	"\u202f", "",
)

// Sanitizer recognizes suppression tokens and formatting noise.
// A suppressed cell is unknown, not zero.
type Sanitizer struct {
	tokens map[string]struct{}
}

// New creates a Sanitizer for the given suppression tokens.
// Tokens match exactly after trimming surrounding whitespace.
func New(tokens []string) *Sanitizer {
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t != "" {
			m[t] = struct{}{}
		}
	}
	return &Sanitizer{tokens: m}
}

// Sanitize returns the numeric value of raw, or false when the cell is empty,
// suppressed or not a number.
func (s *Sanitizer) Sanitize(raw string) (float64, bool) {
	v, outcome := s.Classify(raw)
	return v, outcome == Valid
}

// Classify sanitizes raw and reports why a cell produced no value.
func (s *Sanitizer) Classify(raw string) (float64, Outcome) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, Empty
	}
	if s.isToken(text) {
		return 0, Suppressed
	}

	d, err := decimal.NewFromString(separators.Replace(text))
	if err != nil {
		return 0, Unparsable
	}
	// Exponents beyond float64 range parse as decimals but overflow to ±Inf.
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, Unparsable
	}
	return v, Valid
}

// isToken matches "S" and the parenthesized "(S)" form used in some table vintages.
func (s *Sanitizer) isToken(text string) bool {
	if _, ok := s.tokens[text]; ok {
		return true
	}
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		_, ok := s.tokens[strings.TrimSpace(text[1:len(text)-1])]
		return ok
	}
	return false
}
