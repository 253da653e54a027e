// Package naics parses the industry-group codes that key survey data rows.
package naics

import (
	"fmt"
	"regexp"
	"strings"
)

// codePattern accepts 2-6 digit codes, Census suffixed codes such as "3361MV",
// and sector ranges such as "31-33".
var codePattern = regexp.MustCompile(`^(\d{2,6})([A-Z]{1,2})?(?:-(\d{2,6}))?$`)

// Code is a parsed NAICS identifier.
type Code struct {
	Raw    string // normalized text, e.g. "31-33"
	Prefix string // leading digits, e.g. "31"
}

// Parse parses an identifier cell. Surrounding whitespace and a trailing ".0"
// left by spreadsheet numeric formatting are ignored.
func Parse(s string) (Code, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimSuffix(raw, ".0")
	raw = strings.ReplaceAll(raw, "\u2013", "-")
	m := codePattern.FindStringSubmatch(raw)
	if m == nil {
		return Code{}, fmt.Errorf("invalid NAICS code %q", s)
	}
	return Code{Raw: raw, Prefix: m[1]}, nil
}

// Valid reports whether s parses as a NAICS code.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
