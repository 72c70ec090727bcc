// Package blog serves the blog listing and post pages from the CMS feed.
package blog

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

// Handler provides blog handlers.
type Handler struct {
	content *content.Service
	logger  *zap.Logger
}

// NewHandler creates a new blog Handler.
func NewHandler(svc *content.Service, logger *zap.Logger) *Handler {
	return &Handler{
		content: svc,
		logger:  logger,
	}
}

// ListVM is the view model for the blog index.
type ListVM struct {
	viewdata.BaseVM
	Posts []content.Post
}

// PostVM is the view model for a single post.
type PostVM struct {
	viewdata.BaseVM
	Post    content.Post
	Content template.HTML
}

// Routes returns a chi.Router with blog routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{slug}", h.Show)
	return r
}

// List renders the blog index, newest post first. An unreachable CMS
// yields an empty listing, not an error page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts := h.content.ListPosts(r.Context())

	vm := ListVM{
		BaseVM: viewdata.New(r, "Blog",
			"News and notes from The Tannery Workspace."),
		Posts: posts,
	}
	if b := viewdata.SEO(); b != nil {
		vm.BaseVM = vm.WithSchema(
			b.WebPage(vm.Title, vm.Description, "/blog"),
			b.BreadcrumbList([]seo.Breadcrumb{{Name: "Home", URL: "/"}, {Name: "Blog", URL: "/blog"}}),
		)
	}

	templates.Render(w, r, "blog/list", vm)
}

// Show renders a single post by slug.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post := h.content.GetPostBySlug(r.Context(), slug)
	if post == nil {
		errorsfeature.NotFound(w, r)
		return
	}

	vm := PostVM{
		BaseVM:  viewdata.New(r, post.Title, post.Description),
		Post:    *post,
		Content: markdown.ToHTML(post.Content),
	}
	if b := viewdata.SEO(); b != nil {
		vm.BaseVM = vm.WithSchema(
			b.BlogPosting(post.Title, post.Description, post.Slug, post.Date),
			b.BreadcrumbList([]seo.Breadcrumb{
				{Name: "Home", URL: "/"},
				{Name: "Blog", URL: "/blog"},
				{Name: post.Title, URL: "/blog/" + post.Slug},
			}),
		)
	}

	templates.Render(w, r, "blog/show", vm)
}
