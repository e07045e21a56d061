package utils

import "strings"

// Slugify lowercases a display name and replaces spaces with dashes so it
// can be embedded in a remote model identifier.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
