package repository

import "strings"

// likePattern normalizes a search term for case-insensitive substring
// matching with LIKE. LOWER(col) LIKE is used instead of ILIKE so the same
// queries run on the sqlite database backing the integration tests.
func likePattern(s string) string {
	return strings.ToLower(s)
}
