// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases the name, collapses every run of non-alphanumeric
// characters into a single hyphen, and trims leading/trailing hyphens.
// The result can be empty when the name has no usable characters; callers
// treat that as a validation failure.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValid reports whether value is already in canonical slug form.
func IsValid(value string) bool {
	return value != "" && value == Make(value)
}
