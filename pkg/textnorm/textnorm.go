// Package textnorm canonicalises free-text values (locations, tags) before comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds case, strips diacritics and collapses whitespace.
// "  São  Paulo " and "sao paulo" normalise to the same string.
func Normalize(s string) string {
	// Transformers and casers keep per-use state, so build them per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// Location normalises each comma-separated component and rejoins them with
// ", ", dropping empty ones. "Brooklyn,New York" and "brooklyn ,  new york"
// both become "brooklyn, new york".
func Location(location string) string {
	parts := strings.Split(location, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if n := Normalize(part); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, ", ")
}

// Region returns the broader region of a location: its last comma-separated
// component, normalised. "Brooklyn, New York" -> "new york".
func Region(location string) string {
	parts := strings.Split(location, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		if r := Normalize(parts[i]); r != "" {
			return r
		}
	}
	return ""
}

// Set normalises every tag and returns the distinct non-empty results.
func Set(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if n := Normalize(tag); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
