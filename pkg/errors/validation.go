package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateSlideID validates a slide identifier for safety and correctness.
// Slide IDs end up in cache keys and file names, so the rules are
// intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateSlideID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSlide, "slide id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidSlide, "slide id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSlide, "slide id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidSlide, "slide id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// containerIDRegex matches container IDs produced by the upstream
// structure-analysis service.
var containerIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateContainerID validates a container identifier.
func ValidateContainerID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidContainer, "container id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidContainer, "container id too long (max 128 characters)")
	}

	if !containerIDRegex.MatchString(id) {
		return New(ErrCodeInvalidContainer, "invalid container id: %q", id)
	}

	return nil
}

// ValidateContainerIDs validates a batch of container IDs and rejects
// duplicates.
func ValidateContainerIDs(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if err := ValidateContainerID(id); err != nil {
			return err
		}
		if seen[id] {
			return New(ErrCodeInvalidContainer, "duplicate container id: %q", id)
		}
		seen[id] = true
	}
	return nil
}
