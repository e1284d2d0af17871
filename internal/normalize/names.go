package normalize

import (
	"regexp"
	"strings"
)

var (
	multiSpace   = regexp.MustCompile(`\s+`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// JoinName concatenates first and last name parts, collapsing whitespace.
// Returns "" when both parts are blank.
func JoinName(first, last string) string {
	s := strings.TrimSpace(first + " " + last)
	return multiSpace.ReplaceAllString(s, " ")
}

// Slugify converts a display name into a lowercase underscore slug,
// e.g. "Wall Street Orthodontics" → "wall_street_orthodontics".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
