package pages

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

// Handler serves the static marketing pages and the CMS-backed dynamic
// pages under /pages.
type Handler struct {
	content *content.Service
	errLog  *errorsfeature.ErrorLogger
	logger  *zap.Logger
}

// NewHandler creates a new pages Handler.
func NewHandler(svc *content.Service, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		content: svc,
		errLog:  errLog,
		logger:  logger,
	}
}

// PageVM is the view model for a CMS-backed page.
type PageVM struct {
	viewdata.BaseVM
	Slug    string
	Content template.HTML
}

// StaticVM is the view model for the hand-written marketing pages.
type StaticVM struct {
	viewdata.BaseVM
}

// staticPage describes one marketing page: route, template, and the
// metadata used for titles and structured data.
type staticPage struct {
	path        string
	template    string
	title       string
	description string
	service     string // non-empty adds a Service schema block
}

var staticPages = []staticPage{
	{
		path:        "/about",
		template:    "pages/about",
		title:       "About Us",
		description: "The story of The Tannery Workspace and the team behind it.",
	},
	{
		path:        "/pricing",
		template:    "pages/pricing",
		title:       "Pricing & Memberships",
		description: "Day passes, flexible memberships and private office pricing.",
	},
	{
		path:        "/location",
		template:    "pages/location",
		title:       "Find Us",
		description: "How to reach The Tannery Workspace in Shaftesbury, Dorset.",
	},
	{
		path:        "/privacy-policy",
		template:    "pages/privacy",
		title:       "Privacy Policy",
		description: "How we handle your personal data.",
	},
	{
		path:        "/workspace",
		template:    "pages/workspace",
		title:       "Our Workspace",
		description: "Desks, offices and meeting rooms inside a restored tannery.",
	},
	{
		path:        "/workspace/co-working",
		template:    "pages/coworking",
		title:       "Co-Working Desks",
		description: "Flexible hot desks and dedicated desks with superfast broadband.",
		service:     "Co-Working Desks",
	},
	{
		path:        "/workspace/meeting-rooms",
		template:    "pages/meetingrooms",
		title:       "Meeting Rooms",
		description: "Private meeting rooms for two to twelve, bookable by the hour.",
		service:     "Meeting Room Hire",
	},
	{
		path:        "/workspace/event-space",
		template:    "pages/eventspace",
		title:       "Event Space",
		description: "A characterful venue for workshops, talks and private events.",
		service:     "Event Space Hire",
	},
}

// MountStaticRoutes registers every marketing page at its own top-level
// path on the root router.
func MountStaticRoutes(r chi.Router, h *Handler) {
	for _, p := range staticPages {
		r.Get(p.path, h.showStatic(p))
	}
}

// Routes returns a router for the CMS-backed dynamic pages.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/{slug}", h.Show)
	return r
}

func (h *Handler) showStatic(p staticPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm := StaticVM{
			BaseVM: viewdata.New(r, p.title, p.description),
		}
		if b := viewdata.SEO(); b != nil {
			blocks := []map[string]any{
				b.WebPage(p.title, p.description, p.path),
				b.BreadcrumbList([]seo.Breadcrumb{{Name: "Home", URL: "/"}, {Name: p.title, URL: p.path}}),
			}
			if p.service != "" {
				blocks = append(blocks, b.Service(p.service, p.description, p.path))
			}
			vm.BaseVM = vm.WithSchema(blocks...)
		}
		templates.Render(w, r, p.template, vm)
	}
}

// Show renders a CMS page by slug. Unknown or unpublished slugs fall
// through to the site 404.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page := h.content.GetPageBySlug(r.Context(), slug)
	if page == nil {
		errorsfeature.NotFound(w, r)
		return
	}

	vm := PageVM{
		BaseVM:  viewdata.New(r, page.Title, ""),
		Slug:    page.Slug,
		Content: markdown.ToHTML(page.Content),
	}
	if b := viewdata.SEO(); b != nil {
		vm.BaseVM = vm.WithSchema(
			b.WebPage(page.Title, "", "/pages/"+page.Slug),
		)
	}

	templates.Render(w, r, "pages/show", vm)
}
