package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds catalog and item ids accepted from the command line,
// config files and persisted records.
const maxIDLength = 128

// ValidateID checks that an id taken from outside the process is usable as a
// catalog or item key. kind names the id in the error message ("template",
// "item", ...).
//
// The rules are conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Maximum length of 128 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid characters", kind)
		}
	}
	return nil
}

// ValidateStoreKey validates the key a layout is persisted under.
// Keys end up in file names, redis keys and document ids, so path
// separators and traversal sequences are rejected.
func ValidateStoreKey(key string) error {
	if err := ValidateID("store key", key); err != nil {
		return err
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidInput, "store key contains invalid characters: %q", pattern)
		}
	}
	return nil
}
