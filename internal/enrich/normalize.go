package enrich

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	foldCaser = cases.Fold()

	// stripMarks removes combining marks after NFD decomposition, so
	// "Électricité" and "electricite" normalize to the same label.
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeLabel canonicalizes extracted text for lookups: trimmed,
// whitespace collapsed, case-folded, diacritics stripped.
func NormalizeLabel(s string) string {
	clean := strings.Join(strings.Fields(s), " ")

	if folded, _, err := transform.String(stripMarks, clean); err == nil {
		clean = folded
	}

	return foldCaser.String(clean)
}

// NormalizeCode canonicalizes a categorical code: trimmed and uppered,
// with inner whitespace removed. Codes are compared exactly.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
