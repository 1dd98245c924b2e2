package canon

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	rePunct    = regexp.MustCompile(`[^a-z0-9\s]`)
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]`)

	// NFD + strip combining marks turns "Yaoundé" into "yaounde".
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Fold normalizes free text for comparison: trim, lowercase, strip diacritics.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(deaccent, s)
	if err != nil {
		return s
	}
	return out
}

// FoldBare is Fold with punctuation replaced by spaces and whitespace collapsed.
// Used to canonicalize stored property-type values like "APPART. meublé".
func FoldBare(s string) string {
	return CollapseSpaces(rePunct.ReplaceAllString(Fold(s), " "))
}

// Compact strips everything except letters and digits after folding, so
// "Rue Tokoto, Bonapriso, Douala" and "rue tokoto bonapriso douala" compare equal.
func Compact(s string) string {
	return reNonAlnum.ReplaceAllString(Fold(s), "")
}

func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
