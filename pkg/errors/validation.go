package errors

import (
	"strings"
	"unicode"
)

// ValidateSequenceString validates a piece sequence string before parsing.
// It rejects anything other than the three piece letters.
//
// The validation rules are intentionally conservative:
//   - Empty strings are allowed (an empty start sequence means no prefix)
//   - Only the characters R, L, and S
//   - Maximum length of 256 characters
func ValidateSequenceString(s string) error {
	if len(s) > 256 {
		return New(ErrCodeInvalidSequence, "sequence too long (max 256 pieces)")
	}
	for i, r := range s {
		if r != 'R' && r != 'L' && r != 'S' {
			return New(ErrCodeInvalidSequence, "invalid piece %q at position %d (must be R, L, or S)", r, i)
		}
	}
	return nil
}

// ValidateOutputPath validates a user-supplied output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "output path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateStoreURL validates a result store URL.
// It accepts redis:// and rediss:// URLs or a plain directory path for the
// file backend.
func ValidateStoreURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "store URL cannot be empty")
	}

	if strings.HasPrefix(rawURL, "redis://") || strings.HasPrefix(rawURL, "rediss://") {
		return nil
	}

	// Anything else is treated as a filesystem directory.
	return ValidateOutputPath(rawURL)
}
