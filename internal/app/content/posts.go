package content

import (
	"context"
	"sort"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
)

// ListPosts returns the published blog posts, newest first. Posts without
// an explicit Slug property carry a slug derived from their title. A
// missing Date sorts as the empty string, i.e. last.
func (s *Service) ListPosts(ctx context.Context) []Post {
	if s.db == nil || s.blogDB == "" {
		return nil
	}
	if v, ok := s.cache.get("posts"); ok {
		return v.([]Post)
	}

	results, err := s.queryAll(ctx, s.blogDB, &notionapi.DatabaseQueryRequest{
		Filter: publishedFilter(),
		Sorts: []notionapi.SortObject{
			{Property: "Date", Direction: notionapi.SortOrderDESC},
		},
	})
	if err != nil {
		s.fetchFailed("list_posts", err)
		return nil
	}

	posts := normalizePosts(results)
	s.cache.set("posts", posts)
	return posts
}

// normalizePosts converts raw records to Posts, re-applying the published
// filter and the descending date order locally so the result does not
// depend on the remote service honoring the query spec.
func normalizePosts(results []notionapi.Page) []Post {
	posts := make([]Post, 0, len(results))
	for _, rec := range results {
		if !isPublished(rec.Properties) {
			continue
		}
		title := recordTitle(rec.Properties)
		slug := storedSlug(rec.Properties)
		if slug == "" {
			slug = Slugify(title)
		}
		posts = append(posts, Post{
			ID:      string(rec.ID),
			Title:   title,
			Slug:    slug,
			Date:    dateValue(rec.Properties, "Date"),
			Excerpt: richTextValue(rec.Properties, "Excerpt"),
		})
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts
}

// GetPostBySlug resolves slug to a single published post with full
// markdown content, or nil.
//
// Resolution is two-step: an exact match on the stored Slug property wins;
// otherwise every published post is scanned for the first whose derived
// slug (from its title) equals the request. The fallback accommodates
// posts that were never given an explicit slug.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) *Post {
	if s.db == nil || s.blogDB == "" {
		return nil
	}
	key := "post:" + slug
	if v, ok := s.cache.get(key); ok {
		return v.(*Post)
	}

	results, err := s.queryAll(ctx, s.blogDB, &notionapi.DatabaseQueryRequest{
		Filter: slugFilter(slug),
	})
	if err != nil {
		s.fetchFailed("get_post", err)
		return nil
	}

	var rec *notionapi.Page
	if len(results) > 0 {
		if len(results) > 1 {
			s.logger.Debug("slug collision, using first result",
				zap.String("collection", "posts"),
				zap.String("slug", slug),
			)
		}
		rec = &results[0]
	} else {
		all, err := s.queryAll(ctx, s.blogDB, &notionapi.DatabaseQueryRequest{
			Filter: publishedFilter(),
		})
		if err != nil {
			s.fetchFailed("get_post_fallback", err)
			return nil
		}
		for i := range all {
			if Slugify(recordTitle(all[i].Properties)) == slug {
				rec = &all[i]
				break
			}
		}
	}
	if rec == nil {
		s.stats.NotFound.Add(1)
		return nil
	}

	body, err := s.pageMarkdown(ctx, string(rec.ID))
	if err != nil {
		s.fetchFailed("get_post_content", err)
		return nil
	}

	title := recordTitle(rec.Properties)
	postSlug := storedSlug(rec.Properties)
	if postSlug == "" {
		postSlug = Slugify(title)
	}
	post := &Post{
		ID:          string(rec.ID),
		Title:       title,
		Slug:        postSlug,
		Date:        dateValue(rec.Properties, "Date"),
		Excerpt:     richTextValue(rec.Properties, "Excerpt"),
		Description: richTextJoined(rec.Properties, "Description"),
		Content:     body,
	}
	s.cache.set(key, post)
	return post
}
