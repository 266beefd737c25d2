package core

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	spaceRegex = regexp.MustCompile(`[\s]+`)
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// NormalizeHeader folds a spreadsheet column header to its canonical form:
// lower case, accents stripped, inner whitespace collapsed to underscores.
// "Responsável Email " and "responsavel_email" normalize to the same key.
func NormalizeHeader(s string) string {
	s = CleanString(s, true /* lower */)
	if folded, _, err := transform.String(deaccenter, s); err == nil {
		s = folded
	}
	return spaceRegex.ReplaceAllString(s, "_")
}
