// Package markdown renders CMS markdown to sanitized HTML for templates.
package markdown

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/tanneryworkspace/website/internal/app/system/htmlsanitize"
)

// The renderer configuration never changes and goldmark.Markdown is safe
// to share across goroutines, so one instance serves all requests.
var (
	renderer goldmark.Markdown
	once     sync.Once
)

func getRenderer() goldmark.Markdown {
	once.Do(func() {
		renderer = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				// Raw HTML stays escaped; sanitization below is the
				// second line of defense, not the first.
				html.WithHardWraps(),
			),
		)
	})
	return renderer
}

// ToHTML converts markdown to HTML and sanitizes the result. A conversion
// error yields empty output; content rendering never fails a page.
func ToHTML(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := getRenderer().Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return htmlsanitize.SanitizeToHTML(buf.String())
}
