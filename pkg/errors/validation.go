package errors

import (
	"strings"
	"unicode"
)

// ValidateTitle validates the free-text title written on the second line of a
// VTK file. Line breaks would shift every following header line, so they are
// rejected along with other control characters.
func ValidateTitle(title string) error {
	if len(title) > 256 {
		return New(ErrCodeInvalidInput, "title too long (max 256 characters)")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains control characters")
		}
	}
	return nil
}

// ValidateTag validates a segment tag.
// Tags are joined with ';' in the VTK title line and must fit on it.
func ValidateTag(tag string) error {
	if strings.ContainsAny(tag, ";\r\n") {
		return New(ErrCodeInvalidInput, "tag %q contains ';' or a line break", tag)
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
