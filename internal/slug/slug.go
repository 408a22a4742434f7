// Package slug derives filesystem- and URL-safe identifiers from titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^a-z0-9-]`)
	nonIDRe      = regexp.MustCompile(`[^a-zA-Z0-9-]`)
)

// Slugify turns a human title into a slug: lowercase, trimmed, whitespace
// runs collapsed to a single hyphen, everything outside [a-z0-9-] stripped.
// There is no truncation and no uniqueness suffixing; a colliding slug
// silently overwrites the existing file.
func Slugify(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = whitespaceRe.ReplaceAllString(s, "-")
	return nonSlugRe.ReplaceAllString(s, "")
}

// SanitizeID normalises an already-assigned identifier into a path
// component: every character outside [A-Za-z0-9-] becomes a hyphen, then
// the result is lowercased. Kept separate from Slugify so that lookups and
// deletes receive the same mapping the file was written under.
func SanitizeID(id string) string {
	return strings.ToLower(nonIDRe.ReplaceAllString(id, "-"))
}
