package content

import (
	"context"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
)

// ListPages returns the published CMS pages as summaries (no body content).
// No ordering is guaranteed. Failures and a disabled integration both
// yield an empty slice.
func (s *Service) ListPages(ctx context.Context) []Page {
	if s.db == nil || s.pagesDB == "" {
		return nil
	}
	if v, ok := s.cache.get("pages"); ok {
		return v.([]Page)
	}

	results, err := s.queryAll(ctx, s.pagesDB, &notionapi.DatabaseQueryRequest{
		Filter: publishedFilter(),
	})
	if err != nil {
		s.fetchFailed("list_pages", err)
		return nil
	}

	pages := make([]Page, 0, len(results))
	for _, rec := range results {
		if !isPublished(rec.Properties) {
			continue
		}
		pages = append(pages, Page{
			ID:    string(rec.ID),
			Title: recordTitle(rec.Properties),
			Slug:  storedSlug(rec.Properties),
		})
	}

	s.cache.set("pages", pages)
	return pages
}

// GetPageBySlug returns the published page whose Slug property equals slug
// exactly, with its body converted to markdown, or nil when no such page
// exists or the fetch fails.
func (s *Service) GetPageBySlug(ctx context.Context, slug string) *Page {
	if s.db == nil || s.pagesDB == "" {
		return nil
	}
	key := "page:" + slug
	if v, ok := s.cache.get(key); ok {
		return v.(*Page)
	}

	results, err := s.queryAll(ctx, s.pagesDB, &notionapi.DatabaseQueryRequest{
		Filter: slugFilter(slug),
	})
	if err != nil {
		s.fetchFailed("get_page", err)
		return nil
	}
	if len(results) == 0 {
		s.stats.NotFound.Add(1)
		return nil
	}
	if len(results) > 1 {
		s.logger.Debug("slug collision, using first result",
			zap.String("collection", "pages"),
			zap.String("slug", slug),
		)
	}

	rec := results[0]
	body, err := s.pageMarkdown(ctx, string(rec.ID))
	if err != nil {
		s.fetchFailed("get_page_content", err)
		return nil
	}

	page := &Page{
		ID:      string(rec.ID),
		Title:   recordTitle(rec.Properties),
		Slug:    storedSlug(rec.Properties),
		Content: body,
	}
	s.cache.set(key, page)
	return page
}
