package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxKeyLength bounds identifiers read from visualization tables and results.
const maxKeyLength = 256

// ValidateKey validates an opaque identifier such as a plotId, condition key
// or series key read from user-supplied tables.
//
// Validation rules:
//   - No empty keys
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateKey(kind, key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}

	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", kind, maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", kind)
		}
	}

	return nil
}

// benchmarkNameRegex matches benchmark directory names that are safe to pass
// as a single argv element to the benchmark runner.
var benchmarkNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBenchmarkName validates a benchmark directory name.
// It must be a simple basename without path separators or shell metacharacters.
func ValidateBenchmarkName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "benchmark name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "benchmark name cannot contain path separators: %q", name)
	}

	if !benchmarkNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid benchmark name: %q", name)
	}

	return nil
}

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
