package normalization

import (
	"strings"
)

// ParseInputString folds case and trims surrounding whitespace. Subjects that
// normalize to the same string share a cache entry.
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
