// Package htmlsanitize sanitizes HTML produced from CMS markdown before it
// reaches a template. The CMS is a hosted service edited by non-developers;
// everything it returns is treated as untrusted.
package htmlsanitize

import (
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy builds the shared policy on first use. The base UGC policy
// covers standard markdown output; the additions cover constructs the
// markdown renderer emits for CMS block types.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Images from the CMS (Notion-hosted or external) with captions.
		policy.AllowElements("figure", "figcaption")
		policy.AllowAttrs("alt", "title").OnElements("img")

		// Fenced code blocks carry the language as a class.
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")

		// Task-list checkboxes from GFM rendering, display only.
		policy.AllowAttrs("type", "checked", "disabled").OnElements("input")
	})
	return policy
}

// Sanitize strips dangerous elements and attributes from html.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// SanitizeToHTML sanitizes and returns template.HTML, safe to render in Go
// templates without further escaping.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(Sanitize(html))
}
