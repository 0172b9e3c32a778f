package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidatePrefix validates a file name prefix used for generated variants.
// It must be a simple basename without path components.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidPath, "prefix cannot be empty")
	}
	if strings.ContainsAny(prefix, "/\\") {
		return New(ErrCodeInvalidPath, "prefix cannot contain path separators")
	}
	if strings.HasPrefix(prefix, ".") {
		return New(ErrCodeInvalidPath, "prefix cannot start with a dot")
	}
	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "prefix contains invalid control characters")
		}
	}
	return nil
}
