package content

import (
	"strings"
	"time"

	"github.com/jomei/notionapi"
)

// Page is a flat informational document sourced from the CMS pages
// database. Content is markdown.
type Page struct {
	ID      string
	Title   string
	Slug    string
	Content string
}

// Post is a blog entry. Date is an ISO calendar date string ("2006-01-02");
// listings are ordered newest first.
type Post struct {
	ID          string
	Title       string
	Slug        string
	Date        string
	Excerpt     string
	Description string
	Content     string
}

// Event is a scheduled happening at the workspace. Listings include only
// events dated today or later, soonest first.
type Event struct {
	ID            string
	Title         string
	Slug          string
	Date          string
	Location      string
	FeaturedImage string
	Content       string
}

// The CMS databases are hand-maintained and their schemas drifted: some use
// a "Title" title property, others "Name"; slugs and dates are optional.
// The helpers below normalize every shape to safe defaults so one malformed
// record never fails a whole collection fetch.

// recordTitle returns the record's title from either the Title or the Name
// property, or "" when neither is present.
func recordTitle(props notionapi.Properties) string {
	for _, key := range []string{"Title", "Name"} {
		if tp, ok := props[key].(*notionapi.TitleProperty); ok && len(tp.Title) > 0 {
			return tp.Title[0].PlainText
		}
	}
	return ""
}

// richTextValue returns the first plain-text fragment of a rich_text
// property, or "".
func richTextValue(props notionapi.Properties, key string) string {
	if rt, ok := props[key].(*notionapi.RichTextProperty); ok && len(rt.RichText) > 0 {
		return rt.RichText[0].PlainText
	}
	return ""
}

// richTextJoined concatenates every plain-text fragment of a rich_text
// property. Used for Description, which editors sometimes split across
// fragments.
func richTextJoined(props notionapi.Properties, key string) string {
	rt, ok := props[key].(*notionapi.RichTextProperty)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, fragment := range rt.RichText {
		b.WriteString(fragment.PlainText)
	}
	return b.String()
}

// isPublished reports whether the record's Published checkbox is set.
// Records without the property are treated as unpublished.
func isPublished(props notionapi.Properties) bool {
	if cb, ok := props["Published"].(*notionapi.CheckboxProperty); ok {
		return cb.Checkbox
	}
	return false
}

// dateValue returns the start of a date property as an ISO calendar date
// string, or "" when absent. ISO date strings compare correctly as plain
// strings, which the sort and window logic relies on.
func dateValue(props notionapi.Properties, key string) string {
	dp, ok := props[key].(*notionapi.DateProperty)
	if !ok || dp.Date == nil || dp.Date.Start == nil {
		return ""
	}
	return time.Time(*dp.Date.Start).Format("2006-01-02")
}

// featuredImageURL returns the URL of the first file in the
// "Featured Image" files property, preferring Notion-hosted files over
// external links, or "".
func featuredImageURL(props notionapi.Properties) string {
	fp, ok := props["Featured Image"].(*notionapi.FilesProperty)
	if !ok || len(fp.Files) == 0 {
		return ""
	}
	f := fp.Files[0]
	if f.File != nil && f.File.URL != "" {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

// storedSlug returns the record's explicit Slug property, or "".
func storedSlug(props notionapi.Properties) string {
	return richTextValue(props, "Slug")
}
