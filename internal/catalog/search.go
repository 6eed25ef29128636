package catalog

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinSearchLength is the shortest query that reaches the store.
	MinSearchLength = 2
	// SearchLimit caps the number of search results.
	SearchLimit = 8
)

// SearchFields are the product fields matched by substring search.
var SearchFields = []string{"name", "category", "fabric", "work", "occasion", "fit"}

// NormalizeSearch trims q and reports whether it is long enough to search.
func NormalizeSearch(q string) (string, bool) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < MinSearchLength {
		return "", false
	}
	return q, true
}

// MatchesSearch is the reference case-insensitive substring match.
func MatchesSearch(term string, fields ...string) bool {
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
