package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID creates a short, human-readable identifier.
// Format: {prefix}-{subjectSlug}-{8charHexUUID}
//
// Example:
//   - Input: prefix="merchant", subject="Hans Muller"
//   - Output: "merchant-hans-muller-a3f8e2b1"
//
// An empty subject yields "{prefix}-{8charHexUUID}".
func GenerateID(prefix, subject string) string {
	slug := slugify(subject)
	if slug == "" {
		return prefix + "-" + generateShortUUID()
	}
	return prefix + "-" + slug + "-" + generateShortUUID()
}

// GenerateTransactionID returns a full UUID for ledger transactions
func GenerateTransactionID() string {
	return uuid.NewString()
}

// slugify lowercases and joins alphanumeric runs with hyphens
//   - "Hans Muller" -> "hans-muller"
//   - "Wine/Brandy" -> "wine-brandy"
func slugify(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(fields, "-")
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
