package videoapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/tanneryworkspace/website/internal/app/store/videos"
	"github.com/tanneryworkspace/website/internal/app/system/adminauth"
	"github.com/tanneryworkspace/website/internal/app/system/jsonutil"
	"github.com/tanneryworkspace/website/internal/app/system/timeouts"
	"github.com/tanneryworkspace/website/internal/domain/models"
)

// MaxUploadSize caps video uploads at 50 MB.
const MaxUploadSize = 50 << 20

var allowedTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

// Browsers sometimes send application/octet-stream for videos, so the
// extension is a second chance to classify the upload.
var typeByExtension = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
}

// Handler implements the admin video API: multipart uploads into blob
// storage with a database record per video.
type Handler struct {
	storage storage.Store
	videos  *videostore.Store
	auth    *adminauth.Manager
	logger  *zap.Logger
}

// NewHandler creates a new videoapi Handler.
func NewHandler(store storage.Store, videos *videostore.Store, auth *adminauth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		storage: store,
		videos:  videos,
		auth:    auth,
		logger:  logger,
	}
}

// Routes returns a router with the video API endpoints. Every endpoint
// requires an authenticated admin session.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(h.auth.RequireAdmin)
	r.Get("/", h.List)
	r.Post("/", h.Upload)
	r.Delete("/", h.Delete)
	return r
}

// List returns every stored video, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vids, err := h.videos.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list videos", zap.Error(err))
		jsonutil.InternalError(w, "failed to list videos")
		return
	}
	if vids == nil {
		vids = []models.Video{}
	}
	jsonutil.OK(w, vids)
}

// Upload accepts a multipart form with a single "file" field, streams it
// into blob storage and records the video. The content type comes from the
// part header, falling back to the filename extension.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// Multipart framing adds overhead on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonutil.PayloadTooLarge(w, "videos must be 50 MB or smaller")
			return
		}
		jsonutil.BadRequest(w, `multipart "file" field is required`)
		return
	}
	defer file.Close()

	if header.Size > MaxUploadSize {
		jsonutil.PayloadTooLarge(w, "videos must be 50 MB or smaller")
		return
	}

	contentType := resolveContentType(header.Filename, header.Header.Get("Content-Type"))
	if !allowedTypes[contentType] {
		jsonutil.UnsupportedMediaType(w, "only MP4, WebM and QuickTime videos are accepted")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.logger, "video upload")
	defer cancel()

	key := fmt.Sprintf("videos/%d-%s", time.Now().UnixMilli(), sanitizeFilename(header.Filename))

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := h.storage.Put(ctx, key, file, opts); err != nil {
		_ = h.storage.Delete(ctx, key)
		h.logger.Error("failed to store video", zap.String("key", key), zap.Error(err))
		jsonutil.InternalError(w, "failed to store video")
		return
	}

	video, err := h.videos.Create(ctx, models.Video{
		Pathname:    key,
		URL:         h.storage.URL(key),
		Size:        header.Size,
		ContentType: contentType,
	})
	if err != nil {
		// Keep storage and records consistent on DB failure.
		_ = h.storage.Delete(ctx, key)
		h.logger.Error("failed to record video", zap.String("key", key), zap.Error(err))
		jsonutil.InternalError(w, "failed to record video")
		return
	}

	h.logger.Info("video uploaded",
		zap.String("key", key),
		zap.Int64("size", video.Size),
		zap.String("content_type", contentType))
	jsonutil.Created(w, video)
}

// Delete removes the video identified by its public URL from both blob
// storage and the database. The URL arrives as a JSON body: {"url": ...}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.BadRequest(w, "request body must be JSON with a url field")
		return
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		jsonutil.BadRequest(w, "url is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.logger, "video delete")
	defer cancel()

	video, err := h.videos.GetByURL(ctx, url)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "video not found")
			return
		}
		h.logger.Error("failed to look up video", zap.String("url", url), zap.Error(err))
		jsonutil.InternalError(w, "failed to look up video")
		return
	}

	if err := h.storage.Delete(ctx, video.Pathname); err != nil {
		h.logger.Error("failed to delete video blob", zap.String("key", video.Pathname), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete video")
		return
	}

	if err := h.videos.Delete(ctx, video.Pathname); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.logger.Error("failed to delete video record", zap.String("key", video.Pathname), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete video record")
		return
	}

	h.logger.Info("video deleted", zap.String("key", video.Pathname))
	jsonutil.NoContent(w)
}

// resolveContentType picks the effective MIME type for an upload: the
// declared part type when it is a recognized video type, otherwise the
// type implied by the filename extension.
func resolveContentType(filename, declared string) string {
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = declared[:i]
	}
	declared = strings.TrimSpace(declared)
	if allowedTypes[declared] {
		return declared
	}
	if t, ok := typeByExtension[strings.ToLower(path.Ext(filename))]; ok {
		return t
	}
	return declared
}

// sanitizeFilename reduces an uploaded filename to a safe storage segment:
// base name only, lowercased, with anything outside [a-z0-9._-] replaced
// by a hyphen.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ToLower(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-.")
	if out == "" {
		return "upload"
	}
	return out
}
