// Package events serves the events listing and event detail pages from the
// CMS feed.
package events

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/tanneryworkspace/website/internal/app/features/errors"
	"github.com/tanneryworkspace/website/internal/app/content"
	"github.com/tanneryworkspace/website/internal/app/system/markdown"
	"github.com/tanneryworkspace/website/internal/app/system/seo"
	"github.com/tanneryworkspace/website/internal/app/system/viewdata"
)

// Handler provides event page handlers.
type Handler struct {
	content *content.Service
	logger  *zap.Logger
}

// NewHandler creates a new events Handler.
func NewHandler(svc *content.Service, logger *zap.Logger) *Handler {
	return &Handler{
		content: svc,
		logger:  logger,
	}
}

// ListVM is the view model for the events index.
type ListVM struct {
	viewdata.BaseVM
	Events []content.Event
}

// EventVM is the view model for a single event.
type EventVM struct {
	viewdata.BaseVM
	Event   content.Event
	Content template.HTML
}

// Routes returns a chi.Router with event routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{slug}", h.Show)
	return r
}

// List renders upcoming events, soonest first. Past events are not listed
// but stay reachable by direct link.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events := h.content.ListEvents(r.Context())

	vm := ListVM{
		BaseVM: viewdata.New(r, "Events",
			"Workshops, talks and socials at The Tannery Workspace."),
		Events: events,
	}
	if b := viewdata.SEO(); b != nil {
		vm.BaseVM = vm.WithSchema(
			b.WebPage(vm.Title, vm.Description, "/events"),
			b.BreadcrumbList([]seo.Breadcrumb{{Name: "Home", URL: "/"}, {Name: "Events", URL: "/events"}}),
		)
	}

	templates.Render(w, r, "events/list", vm)
}

// Show renders a single event by slug.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	event := h.content.GetEventBySlug(r.Context(), slug)
	if event == nil {
		errorsfeature.NotFound(w, r)
		return
	}

	vm := EventVM{
		BaseVM:  viewdata.New(r, event.Title, ""),
		Event:   *event,
		Content: markdown.ToHTML(event.Content),
	}
	if b := viewdata.SEO(); b != nil {
		vm.BaseVM = vm.WithSchema(
			b.Event(event.Title, "", event.Slug, event.Date, event.Location),
			b.BreadcrumbList([]seo.Breadcrumb{
				{Name: "Home", URL: "/"},
				{Name: "Events", URL: "/events"},
				{Name: event.Title, URL: "/events/" + event.Slug},
			}),
		)
	}

	templates.Render(w, r, "events/show", vm)
}
