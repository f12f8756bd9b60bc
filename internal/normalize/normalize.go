// Package normalize provides the string normalization and similarity
// scoring every matcher builds on. Normalization is the primary equality
// key; similarity is a Levenshtein-based score in [0,1].
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// NFD-decompose, drop combining marks, recompose. "Sürth" -> "Surth".
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize lowercases, trims, and collapses internal whitespace.
// Diacritics are preserved; use Fold when accent-insensitive keys are
// needed (scraped portal data is inconsistent about umlauts).
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRe.ReplaceAllString(s, " ")
}

// Fold normalizes and additionally strips diacritics.
func Fold(s string) string {
	folded, _, err := transform.String(stripAccents, Normalize(s))
	if err != nil {
		return Normalize(s)
	}
	return folded
}

// Distance is the classic edit distance (insert/delete/substitute, cost 1)
// over the full, case-folded strings.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
}

// Similarity returns 1 - distance/maxLen in [0,1], case-insensitive.
// Two empty strings are identical, hence 1.0.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein.ComputeDistance(na, nb))/float64(maxLen)
}
