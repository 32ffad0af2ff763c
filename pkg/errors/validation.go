package errors

import (
	"strings"
	"unicode"
)

// MaxLabelLength is the longest label accepted for a weight.
const MaxLabelLength = 256

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormat checks that format is one of valid.
func ValidateFormat(format string, valid ...string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(valid, ", "))
}

// ValidateLabel validates a weight label. Empty labels are allowed.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label %q contains control characters", label)
		}
	}
	return nil
}
