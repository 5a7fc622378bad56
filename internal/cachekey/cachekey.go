package cachekey

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/artlore/artlore-backend/internal/normalization"
)

// ForSubject derives the deterministic cache key for a subject expansion.
// The key is the hex SHA-256 of the normalized subject joined with the parent
// expansion id. The same subject expanded under two different parents yields
// two distinct keys; a NUL separator keeps subject/parent boundaries from
// ambiguating.
func ForSubject(subject string, parentExpansionID string) string {
	h := sha256.New()
	_, _ = h.Write([]byte(normalization.ParseInputString(subject)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(parentExpansionID))
	return hex.EncodeToString(h.Sum(nil))
}
