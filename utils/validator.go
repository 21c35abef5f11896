// utils/validator.go - Input validation
package utils

import "strings"

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// SanitizePtr sanitizes optional text fields in place and drops values
// that end up empty.
func SanitizePtr(input *string) *string {
	if input == nil {
		return nil
	}
	cleaned := SanitizeInput(*input)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
