package pages

import (
	"fmt"
	"strings"
)

// DefaultPathKey is the canonical key an empty path resolves to.
const DefaultPathKey = "index.md"

// PageNotFoundError reports a point lookup for a key with no stored record.
// Absence is an expected outcome; callers substitute the zero Page.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	return fmt.Sprintf("page not found: %s", e.Key)
}

// NormalizePathKey derives the storage key for a request path: one leading
// separator is stripped and the empty key maps to DefaultPathKey. Keys stay
// case-sensitive and are otherwise untouched.
func NormalizePathKey(path string) string {
	key := strings.TrimPrefix(path, "/")
	if key == "" {
		return DefaultPathKey
	}
	return key
}
