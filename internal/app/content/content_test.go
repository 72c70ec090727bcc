package content

import (
	"context"
	"errors"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
)

// Property literal helpers for building fake CMS records.

func titleProp(text string) *notionapi.TitleProperty {
	return &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: text}}}
}

func richTextProp(text string) *notionapi.RichTextProperty {
	return &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: text}}}
}

func checkboxProp(v bool) *notionapi.CheckboxProperty {
	return &notionapi.CheckboxProperty{Checkbox: v}
}

func dateProp(iso string) *notionapi.DateProperty {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		panic(err)
	}
	d := notionapi.Date(t)
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}

// fakeDB is a databaseQuerier over an in-memory record set. It interprets
// just enough of the query to be faithful: the published flag, and an
// exact stored-slug equality filter when one is present.
type fakeDB struct {
	records []notionapi.Page
	err     error
	calls   int
}

func (f *fakeDB) Query(_ context.Context, _ notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	slugEquals := ""
	if and, ok := req.Filter.(notionapi.AndCompoundFilter); ok {
		for _, sub := range and {
			if pf, ok := sub.(notionapi.PropertyFilter); ok && pf.Property == "Slug" && pf.RichText != nil {
				slugEquals = pf.RichText.Equals
			}
		}
	}

	var out []notionapi.Page
	for _, rec := range f.records {
		if !isPublished(rec.Properties) {
			continue
		}
		if slugEquals != "" && storedSlug(rec.Properties) != slugEquals {
			continue
		}
		out = append(out, rec)
	}
	return &notionapi.DatabaseQueryResponse{Results: out}, nil
}

// fakeBlocks is a blockFetcher serving canned block trees keyed by parent
// block ID.
type fakeBlocks struct {
	children map[string]notionapi.Blocks
	err      error
	calls    int
}

func (f *fakeBlocks) GetChildren(_ context.Context, id notionapi.BlockID, _ *notionapi.Pagination) (*notionapi.GetChildrenResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &notionapi.GetChildrenResponse{Results: f.children[string(id)]}, nil
}

var errFakeNetwork = errors.New("connection refused")

// newTestService wires a Service directly onto fakes, with caching off and
// the clock pinned so date-window tests are deterministic.
func newTestService(db databaseQuerier, blocks blockFetcher, now time.Time) *Service {
	return &Service{
		db:       db,
		blocks:   blocks,
		pagesDB:  "pages-db",
		blogDB:   "blog-db",
		eventsDB: "events-db",
		cache:    newTTLCache(0, time.Now),
		logger:   zap.NewNop(),
		now:      func() time.Time { return now },
	}
}

func paragraph(text string) *notionapi.ParagraphBlock {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{Type: notionapi.BlockTypeParagraph},
		Paragraph:  notionapi.Paragraph{RichText: []notionapi.RichText{{PlainText: text}}},
	}
}
