package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentID validates a document identifier for safety before it
// reaches a storage backend or a URL path.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "document ID cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidDocument, "document ID too long (max 256 characters)")
	}
	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "document ID contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidDocument, "document ID contains invalid characters: %q", pattern)
		}
	}
	return nil
}
