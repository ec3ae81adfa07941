package errors

import (
	"strings"
	"unicode"
)

// PPMExtension is the only file extension the editor reads or writes.
const PPMExtension = ".ppm"

// maxPathLength bounds user-supplied paths.
const maxPathLength = 4096

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

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

// ValidatePPMFilename checks that path is a usable PPM file name.
// role names the argument ("input" or "output") and appears in the message,
// e.g. "Invalid output file extension".
func ValidatePPMFilename(path, role string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	if !strings.HasSuffix(path, PPMExtension) {
		return New(ErrCodeInvalidPath, "Invalid %s file extension", role)
	}

	return nil
}
