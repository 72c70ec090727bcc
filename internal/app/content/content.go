// Package content is the gateway to the Notion-hosted site content: CMS
// pages, blog posts, and events. It queries the Notion API, normalizes the
// heterogeneous property schemas of the three databases into flat records,
// and converts page block trees to markdown for rendering.
//
// The public operations never return errors. A marketing page must render
// with an empty content section rather than fail, so fetch failures are
// logged, counted, and collapsed to empty slices or nil records. Callers
// therefore cannot distinguish "no content" from "fetch failed"; the Stats
// counters exist so operators can.
package content

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
)

// databaseQuerier is the slice of the Notion client used for collection
// queries. Satisfied by notionapi.Client.Database and by test fakes.
type databaseQuerier interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// blockFetcher is the slice of the Notion client used to walk a page's
// block tree. Satisfied by notionapi.Client.Block and by test fakes.
type blockFetcher interface {
	GetChildren(ctx context.Context, id notionapi.BlockID, pagination *notionapi.Pagination) (*notionapi.GetChildrenResponse, error)
}

// Config holds the settings needed to talk to the CMS. An empty Token
// disables the integration entirely; an empty database ID disables just
// that collection. Disabled operations return empty results without making
// a network call.
type Config struct {
	Token    string
	PagesDB  string
	BlogDB   string
	EventsDB string

	// CacheTTL is the revalidation window. Results are served from memory
	// until the window expires, then re-fetched. Zero disables caching.
	CacheTTL time.Duration
}

// DefaultCacheTTL matches the revalidation window the site was designed
// around: content is at most a minute stale.
const DefaultCacheTTL = time.Minute

// Stats counts content-layer outcomes that the collapsed error policy
// hides from callers.
type Stats struct {
	FetchFailures atomic.Int64 // empty/nil results caused by a failed fetch
	NotFound      atomic.Int64 // nil results from a clean lookup with no match
}

// Service fetches and normalizes CMS content. The zero value is not
// usable; construct with New.
type Service struct {
	db       databaseQuerier
	blocks   blockFetcher
	pagesDB  notionapi.DatabaseID
	blogDB   notionapi.DatabaseID
	eventsDB notionapi.DatabaseID
	cache    *ttlCache
	logger   *zap.Logger
	stats    Stats

	// now is swapped in tests to pin the event date window.
	now func() time.Time
}

// New creates a content Service from cfg. When cfg.Token is empty the
// returned Service is fully constructed but disabled: every operation
// short-circuits to an empty result.
func New(cfg Config, logger *zap.Logger) *Service {
	s := &Service{
		pagesDB:  notionapi.DatabaseID(cfg.PagesDB),
		blogDB:   notionapi.DatabaseID(cfg.BlogDB),
		eventsDB: notionapi.DatabaseID(cfg.EventsDB),
		cache:    newTTLCache(cfg.CacheTTL, time.Now),
		logger:   logger,
		now:      time.Now,
	}
	if cfg.Token != "" {
		client := notionapi.NewClient(notionapi.Token(cfg.Token))
		s.db = client.Database
		s.blocks = client.Block
	}
	return s
}

// Enabled reports whether the CMS integration is configured at all.
func (s *Service) Enabled() bool {
	return s.db != nil
}

// StatsSnapshot is a point-in-time copy of the service counters.
type StatsSnapshot struct {
	FetchFailures int64
	NotFound      int64
}

// StatsSnapshot returns the current counter values.
func (s *Service) StatsSnapshot() StatsSnapshot {
	return StatsSnapshot{
		FetchFailures: s.stats.FetchFailures.Load(),
		NotFound:      s.stats.NotFound.Load(),
	}
}

// fetchFailed records and logs a failed fetch. Every code path that
// collapses an error to an empty result goes through here so the
// failure is visible to operators.
func (s *Service) fetchFailed(op string, err error) {
	s.stats.FetchFailures.Add(1)
	s.logger.Error("content fetch failed",
		zap.String("op", op),
		zap.Error(err),
	)
}

// publishedFilter matches records whose Published checkbox is set.
func publishedFilter() notionapi.Filter {
	return notionapi.PropertyFilter{
		Property: "Published",
		Checkbox: &notionapi.CheckboxFilterCondition{Equals: true},
	}
}

// slugFilter matches published records whose Slug property equals slug
// exactly (case-sensitive).
func slugFilter(slug string) notionapi.Filter {
	return notionapi.AndCompoundFilter{
		notionapi.PropertyFilter{
			Property: "Slug",
			RichText: &notionapi.TextFilterCondition{Equals: slug},
		},
		publishedFilter(),
	}
}

// queryAll drains a database query across pagination pages.
func (s *Service) queryAll(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	var pages []notionapi.Page
	for {
		resp, err := s.db.Query(ctx, id, req)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore {
			return pages, nil
		}
		req.StartCursor = resp.NextCursor
	}
}
