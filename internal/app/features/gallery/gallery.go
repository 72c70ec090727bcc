// Package gallery shows the public video tour gallery.
package gallery

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	videostore "github.com/tanneryworkspace/website/internal/app/store/videos"
	"github.com/tanneryworkspace/website/internal/app/system/viewdata"
	"github.com/tanneryworkspace/website/internal/domain/models"
)

// Handler provides the gallery page.
type Handler struct {
	videos *videostore.Store
	logger *zap.Logger
}

// NewHandler creates a new gallery Handler.
func NewHandler(videos *videostore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		videos: videos,
		logger: logger,
	}
}

// GalleryVM is the view model for the gallery page.
type GalleryVM struct {
	viewdata.BaseVM
	Videos []models.Video
}

// Routes returns a chi.Router with gallery routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the video gallery. A store error renders an empty gallery
// rather than an error page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.List(r.Context())
	if err != nil {
		h.logger.Warn("gallery video listing failed", zap.Error(err))
		videos = nil
	}

	vm := GalleryVM{
		BaseVM: viewdata.New(r, "Gallery",
			"Video tours of The Tannery Workspace."),
		Videos: videos,
	}
	if b := viewdata.SEO(); b != nil {
		vm.BaseVM = vm.WithSchema(
			b.WebPage(vm.Title, vm.Description, "/gallery"),
		)
	}

	templates.Render(w, r, "gallery/index", vm)
}
