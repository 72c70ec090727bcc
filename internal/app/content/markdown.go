package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
)

// maxBlockDepth bounds recursion into nested block children. Notion allows
// arbitrary nesting; anything deeper than this renders flattened rather
// than risking a runaway walk on a pathological page.
const maxBlockDepth = 3

// blockPageSize is the Notion API maximum for a block-children request.
const blockPageSize = 100

// pageMarkdown converts the block tree of the document with the given ID
// into a single markdown string. Block order is preserved; unsupported
// block types degrade to their plain-text content or are omitted, never
// failing the conversion. Only the block fetch itself can error, which
// callers treat as a fetch failure for the whole record.
func (s *Service) pageMarkdown(ctx context.Context, id string) (string, error) {
	var b strings.Builder
	if err := s.writeChildren(ctx, &b, notionapi.BlockID(id), 0); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// writeChildren fetches and renders all children of parent, following
// pagination.
func (s *Service) writeChildren(ctx context.Context, b *strings.Builder, parent notionapi.BlockID, depth int) error {
	cursor := ""
	for {
		resp, err := s.blocks.GetChildren(ctx, parent, &notionapi.Pagination{
			StartCursor: notionapi.Cursor(cursor),
			PageSize:    blockPageSize,
		})
		if err != nil {
			return err
		}
		for _, block := range resp.Results {
			if err := s.writeBlock(ctx, b, block, depth); err != nil {
				return err
			}
		}
		if !resp.HasMore {
			return nil
		}
		cursor = resp.NextCursor
	}
}

// writeBlock renders one block as markdown. List items at depth > 0 are
// indented so nesting survives the conversion.
func (s *Service) writeBlock(ctx context.Context, b *strings.Builder, block notionapi.Block, depth int) error {
	indent := strings.Repeat("  ", depth)

	switch v := block.(type) {
	case *notionapi.ParagraphBlock:
		if text := inlineMarkdown(v.Paragraph.RichText); text != "" {
			b.WriteString(indent + text + "\n\n")
		}
	case *notionapi.Heading1Block:
		b.WriteString("# " + inlineMarkdown(v.Heading1.RichText) + "\n\n")
	case *notionapi.Heading2Block:
		b.WriteString("## " + inlineMarkdown(v.Heading2.RichText) + "\n\n")
	case *notionapi.Heading3Block:
		b.WriteString("### " + inlineMarkdown(v.Heading3.RichText) + "\n\n")
	case *notionapi.BulletedListItemBlock:
		b.WriteString(indent + "- " + inlineMarkdown(v.BulletedListItem.RichText) + "\n")
		if v.HasChildren && depth < maxBlockDepth {
			if err := s.writeChildren(ctx, b, v.ID, depth+1); err != nil {
				return err
			}
		}
	case *notionapi.NumberedListItemBlock:
		// "1." for every item is valid GFM; renderers number sequentially.
		b.WriteString(indent + "1. " + inlineMarkdown(v.NumberedListItem.RichText) + "\n")
		if v.HasChildren && depth < maxBlockDepth {
			if err := s.writeChildren(ctx, b, v.ID, depth+1); err != nil {
				return err
			}
		}
	case *notionapi.ToDoBlock:
		box := "[ ]"
		if v.ToDo.Checked {
			box = "[x]"
		}
		b.WriteString(indent + "- " + box + " " + inlineMarkdown(v.ToDo.RichText) + "\n")
	case *notionapi.QuoteBlock:
		b.WriteString("> " + inlineMarkdown(v.Quote.RichText) + "\n\n")
	case *notionapi.CalloutBlock:
		// Callouts degrade to blockquotes: closest markdown equivalent.
		b.WriteString("> " + inlineMarkdown(v.Callout.RichText) + "\n\n")
	case *notionapi.CodeBlock:
		b.WriteString("```" + v.Code.Language + "\n")
		b.WriteString(plainText(v.Code.RichText))
		b.WriteString("\n```\n\n")
	case *notionapi.DividerBlock:
		b.WriteString("---\n\n")
	case *notionapi.ImageBlock:
		if url := imageURL(v); url != "" {
			caption := plainText(v.Image.Caption)
			b.WriteString(fmt.Sprintf("![%s](%s)\n\n", caption, url))
		}
	case *notionapi.BookmarkBlock:
		if v.Bookmark.URL != "" {
			label := plainText(v.Bookmark.Caption)
			if label == "" {
				label = v.Bookmark.URL
			}
			b.WriteString(fmt.Sprintf("[%s](%s)\n\n", label, v.Bookmark.URL))
		}
	case *notionapi.EmbedBlock:
		if v.Embed.URL != "" {
			b.WriteString(v.Embed.URL + "\n\n")
		}
	default:
		// Unsupported block type: omit rather than fail.
	}
	return nil
}

// imageURL extracts the image location from either hosting variant.
func imageURL(v *notionapi.ImageBlock) string {
	if v.Image.File != nil && v.Image.File.URL != "" {
		return v.Image.File.URL
	}
	if v.Image.External != nil {
		return v.Image.External.URL
	}
	return ""
}

// inlineMarkdown renders rich-text fragments with their annotations:
// code, bold, italic, strikethrough, and links.
func inlineMarkdown(fragments []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range fragments {
		text := rt.PlainText
		if text == "" {
			continue
		}
		if a := rt.Annotations; a != nil {
			if a.Code {
				text = "`" + text + "`"
			}
			if a.Bold {
				text = "**" + text + "**"
			}
			if a.Italic {
				text = "*" + text + "*"
			}
			if a.Strikethrough {
				text = "~~" + text + "~~"
			}
		}
		if rt.Href != "" {
			text = "[" + text + "](" + rt.Href + ")"
		}
		b.WriteString(text)
	}
	return b.String()
}

// plainText joins rich-text fragments without any formatting.
func plainText(fragments []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range fragments {
		b.WriteString(rt.PlainText)
	}
	return b.String()
}
