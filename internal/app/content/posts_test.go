package content

import (
	"context"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
)

func blogFixture() *fakeDB {
	return &fakeDB{records: []notionapi.Page{
		{
			ID: "post-hello",
			Properties: notionapi.Properties{
				"Title":     titleProp("Hello World"),
				"Published": checkboxProp(true),
				"Date":      dateProp("2024-01-01"),
				"Excerpt":   richTextProp("Our first post."),
			},
		},
		{
			ID: "post-second",
			Properties: notionapi.Properties{
				"Title":     titleProp("Second Post"),
				"Slug":      richTextProp("post-2"),
				"Published": checkboxProp(true),
				"Date":      dateProp("2024-02-01"),
			},
		},
		{
			ID: "post-draft",
			Properties: notionapi.Properties{
				"Title": titleProp("Unpublished Draft"),
				"Date":  dateProp("2024-03-01"),
			},
		},
	}}
}

func TestListPosts(t *testing.T) {
	db := blogFixture()
	blocks := &fakeBlocks{}
	s := newTestService(db, blocks, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	posts := s.ListPosts(context.Background())
	if len(posts) != 2 {
		t.Fatalf("ListPosts() returned %d posts, want 2", len(posts))
	}
	if posts[0].Title != "Second Post" || posts[1].Title != "Hello World" {
		t.Errorf("posts not in descending date order: [%s, %s]", posts[0].Title, posts[1].Title)
	}
	if posts[0].Slug != "post-2" {
		t.Errorf("stored slug = %q, want %q", posts[0].Slug, "post-2")
	}
	if posts[1].Slug != "hello-world" {
		t.Errorf("derived slug = %q, want %q", posts[1].Slug, "hello-world")
	}
	if posts[1].Excerpt != "Our first post." {
		t.Errorf("excerpt = %q", posts[1].Excerpt)
	}
}

func TestListPostsMissingDateSortsLast(t *testing.T) {
	db := &fakeDB{records: []notionapi.Page{
		{
			ID: "undated",
			Properties: notionapi.Properties{
				"Title":     titleProp("Undated"),
				"Published": checkboxProp(true),
			},
		},
		{
			ID: "dated",
			Properties: notionapi.Properties{
				"Title":     titleProp("Dated"),
				"Published": checkboxProp(true),
				"Date":      dateProp("2020-01-01"),
			},
		},
	}}
	s := newTestService(db, &fakeBlocks{}, time.Now())

	posts := s.ListPosts(context.Background())
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Title != "Dated" {
		t.Errorf("post with a date should sort before a missing date, got %q first", posts[0].Title)
	}
	if posts[1].Date != "" {
		t.Errorf("missing date should normalize to empty string, got %q", posts[1].Date)
	}
}

func TestGetPostBySlugStored(t *testing.T) {
	db := blogFixture()
	blocks := &fakeBlocks{children: map[string]notionapi.Blocks{
		"post-second": {paragraph("Body of the second post.")},
	}}
	s := newTestService(db, blocks, time.Now())

	post := s.GetPostBySlug(context.Background(), "post-2")
	if post == nil {
		t.Fatal("GetPostBySlug(post-2) = nil, want record")
	}
	if post.ID != "post-second" {
		t.Errorf("resolved ID = %q, want post-second", post.ID)
	}
	if post.Content != "Body of the second post." {
		t.Errorf("content = %q", post.Content)
	}
}

func TestGetPostBySlugDerivedFallback(t *testing.T) {
	db := blogFixture()
	blocks := &fakeBlocks{children: map[string]notionapi.Blocks{
		"post-hello": {paragraph("Hello body.")},
	}}
	s := newTestService(db, blocks, time.Now())

	// "Hello World" has no Slug property; it is only reachable through
	// the slug derived from its title.
	post := s.GetPostBySlug(context.Background(), "hello-world")
	if post == nil {
		t.Fatal("GetPostBySlug(hello-world) = nil, want derived-slug match")
	}
	if post.ID != "post-hello" {
		t.Errorf("resolved ID = %q, want post-hello", post.ID)
	}
	if post.Slug != "hello-world" {
		t.Errorf("slug = %q, want hello-world", post.Slug)
	}
}

func TestGetPostBySlugNotFound(t *testing.T) {
	s := newTestService(blogFixture(), &fakeBlocks{}, time.Now())

	if post := s.GetPostBySlug(context.Background(), "nope"); post != nil {
		t.Errorf("GetPostBySlug(nope) = %+v, want nil", post)
	}
	if n := s.StatsSnapshot().NotFound; n != 1 {
		t.Errorf("NotFound counter = %d, want 1", n)
	}
}

func TestGetPostBySlugFetchFailure(t *testing.T) {
	db := &fakeDB{err: errFakeNetwork}
	s := newTestService(db, &fakeBlocks{}, time.Now())

	if post := s.GetPostBySlug(context.Background(), "post-2"); post != nil {
		t.Errorf("fetch failure should yield nil, got %+v", post)
	}
	if n := s.StatsSnapshot().FetchFailures; n != 1 {
		t.Errorf("FetchFailures counter = %d, want 1", n)
	}
}

func TestDisabledIntegrationMakesNoCalls(t *testing.T) {
	db := blogFixture()
	blocks := &fakeBlocks{}

	// Wired to fakes but with every database ID blank: the constructed
	// "disabled" state, as when no credential is configured.
	s := newTestService(db, blocks, time.Now())
	s.pagesDB, s.blogDB, s.eventsDB = "", "", ""

	ctx := context.Background()
	if got := s.ListPages(ctx); len(got) != 0 {
		t.Errorf("ListPages = %v, want empty", got)
	}
	if got := s.ListPosts(ctx); len(got) != 0 {
		t.Errorf("ListPosts = %v, want empty", got)
	}
	if got := s.ListEvents(ctx); len(got) != 0 {
		t.Errorf("ListEvents = %v, want empty", got)
	}
	if got := s.GetPageBySlug(ctx, "about"); got != nil {
		t.Errorf("GetPageBySlug = %v, want nil", got)
	}
	if got := s.GetPostBySlug(ctx, "post-2"); got != nil {
		t.Errorf("GetPostBySlug = %v, want nil", got)
	}
	if got := s.GetEventBySlug(ctx, "open-day"); got != nil {
		t.Errorf("GetEventBySlug = %v, want nil", got)
	}
	if db.calls != 0 || blocks.calls != 0 {
		t.Errorf("disabled integration made %d query and %d block calls, want 0", db.calls, blocks.calls)
	}
}

func TestNewWithoutTokenIsDisabled(t *testing.T) {
	s := New(Config{PagesDB: "a", BlogDB: "b", EventsDB: "c"}, zap.NewNop())
	if s.Enabled() {
		t.Error("Service with no token should be disabled")
	}
	if posts := s.ListPosts(context.Background()); posts != nil {
		t.Errorf("disabled ListPosts = %v, want nil", posts)
	}
}

func TestMissingTitleNormalizesToEmpty(t *testing.T) {
	db := &fakeDB{records: []notionapi.Page{
		{
			ID: "untitled",
			Properties: notionapi.Properties{
				"Published": checkboxProp(true),
				"Date":      dateProp("2024-05-05"),
			},
		},
	}}
	s := newTestService(db, &fakeBlocks{}, time.Now())

	posts := s.ListPosts(context.Background())
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	if posts[0].Title != "" {
		t.Errorf("title = %q, want empty string", posts[0].Title)
	}
	if posts[0].Slug != "" {
		t.Errorf("slug derived from empty title = %q, want empty", posts[0].Slug)
	}
}
