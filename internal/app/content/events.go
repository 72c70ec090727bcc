package content

import (
	"context"
	"sort"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"
)

// ListEvents returns the published events dated today or later (UTC
// calendar day), soonest first.
func (s *Service) ListEvents(ctx context.Context) []Event {
	if s.db == nil || s.eventsDB == "" {
		return nil
	}
	if v, ok := s.cache.get("events"); ok {
		return v.([]Event)
	}

	today := s.today()
	onOrAfter := notionapi.Date(s.now().UTC().Truncate(24 * time.Hour))
	results, err := s.queryAll(ctx, s.eventsDB, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.AndCompoundFilter{
			publishedFilter(),
			notionapi.PropertyFilter{
				Property: "Date",
				Date:     &notionapi.DateFilterCondition{OnOrAfter: &onOrAfter},
			},
		},
		Sorts: []notionapi.SortObject{
			{Property: "Date", Direction: notionapi.SortOrderASC},
		},
	})
	if err != nil {
		s.fetchFailed("list_events", err)
		return nil
	}

	events := normalizeEvents(results, today)
	s.cache.set("events", events)
	return events
}

// today returns the current UTC calendar day as an ISO date string.
func (s *Service) today() string {
	return s.now().UTC().Format("2006-01-02")
}

// normalizeEvents converts raw records to Events, re-applying the
// published flag, the date window, and the ascending order locally.
// Events with no date at all are dropped from listings: an undated event
// cannot be "upcoming".
func normalizeEvents(results []notionapi.Page, today string) []Event {
	events := make([]Event, 0, len(results))
	for _, rec := range results {
		if !isPublished(rec.Properties) {
			continue
		}
		date := dateValue(rec.Properties, "Date")
		if date == "" || date < today {
			continue
		}
		events = append(events, Event{
			ID:            string(rec.ID),
			Title:         recordTitle(rec.Properties),
			Slug:          storedSlug(rec.Properties),
			Date:          date,
			Location:      richTextValue(rec.Properties, "Location"),
			FeaturedImage: featuredImageURL(rec.Properties),
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}

// GetEventBySlug returns the published event whose Slug property equals
// slug exactly, with full markdown content, or nil. Past events remain
// reachable by slug so an old link renders the event rather than a 404.
func (s *Service) GetEventBySlug(ctx context.Context, slug string) *Event {
	if s.db == nil || s.eventsDB == "" {
		return nil
	}
	key := "event:" + slug
	if v, ok := s.cache.get(key); ok {
		return v.(*Event)
	}

	results, err := s.queryAll(ctx, s.eventsDB, &notionapi.DatabaseQueryRequest{
		Filter: slugFilter(slug),
	})
	if err != nil {
		s.fetchFailed("get_event", err)
		return nil
	}
	if len(results) == 0 {
		s.stats.NotFound.Add(1)
		return nil
	}
	if len(results) > 1 {
		s.logger.Debug("slug collision, using first result",
			zap.String("collection", "events"),
			zap.String("slug", slug),
		)
	}

	rec := results[0]
	body, err := s.pageMarkdown(ctx, string(rec.ID))
	if err != nil {
		s.fetchFailed("get_event_content", err)
		return nil
	}

	event := &Event{
		ID:            string(rec.ID),
		Title:         recordTitle(rec.Properties),
		Slug:          storedSlug(rec.Properties),
		Date:          dateValue(rec.Properties, "Date"),
		Location:      richTextValue(rec.Properties, "Location"),
		FeaturedImage: featuredImageURL(rec.Properties),
		Content:       body,
	}
	s.cache.set(key, event)
	return event
}
