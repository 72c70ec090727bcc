package home

import (
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tanneryworkspace/website/internal/app/content"
	"github.com/tanneryworkspace/website/internal/app/system/viewdata"
)

// Handler provides the home page.
type Handler struct {
	content *content.Service
	logger  *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(svc *content.Service, logger *zap.Logger) *Handler {
	return &Handler{
		content: svc,
		logger:  logger,
	}
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	viewdata.BaseVM
	UpcomingEvents []content.Event
	LatestPosts    []content.Post
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// maxHighlights caps the events and posts shown on the landing page.
const maxHighlights = 3

// Index renders the home page. Events and posts are fetched concurrently;
// either list may come back empty when the CMS is unreachable and the page
// still renders.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		wg     sync.WaitGroup
		events []content.Event
		posts  []content.Post
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		events = h.content.ListEvents(ctx)
	}()
	go func() {
		defer wg.Done()
		posts = h.content.ListPosts(ctx)
	}()
	wg.Wait()

	if len(events) > maxHighlights {
		events = events[:maxHighlights]
	}
	if len(posts) > maxHighlights {
		posts = posts[:maxHighlights]
	}

	vm := HomeVM{
		BaseVM: viewdata.New(r, "Coworking in the Heart of Dorset",
			"Flexible desks, private offices and meeting rooms at The Tannery Workspace."),
		UpcomingEvents: events,
		LatestPosts:    posts,
	}
	if b := viewdata.SEO(); b != nil {
		vm.BaseVM = vm.WithSchema(
			b.LocalBusiness(),
			b.WebPage(vm.Title, vm.Description, "/"),
		)
	}

	templates.Render(w, r, "home/index", vm)
}
