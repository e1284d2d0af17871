package normalize

import "strings"

// CleanPatientGUID strips the curly braces some practice-management systems
// wrap around patient GUIDs ("{ABC-123}" → "ABC-123") and trims whitespace.
// Returns "" for blank input.
func CleanPatientGUID(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	return strings.TrimSpace(s)
}
