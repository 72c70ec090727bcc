package content

import (
	"regexp"
	"strings"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphenRuns = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a title: lowercase, non-alphanumeric
// characters stripped, whitespace collapsed to single hyphens, hyphen runs
// collapsed, leading/trailing hyphens trimmed.
//
// It is a pure function of its input. Posts without an explicit Slug
// property are addressed by their derived slug, so the same title must
// resolve identically on every request.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
