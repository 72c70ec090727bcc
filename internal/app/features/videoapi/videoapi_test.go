package videoapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tanneryworkspace/website/internal/app/store/videos"
	"github.com/tanneryworkspace/website/internal/app/system/adminauth"
	"github.com/tanneryworkspace/website/internal/domain/models"
	"github.com/tanneryworkspace/website/internal/testutil"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "/media",
	})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	auth, err := adminauth.NewManager(
		"0123456789abcdef0123456789abcdef", "tannery-admin-test",
		string(hash), time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	return NewHandler(store, videostore.New(db), auth, zap.NewNop())
}

func uploadRequest(t *testing.T, filename, contentType string, body []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return adminauth.WithTestAdmin(req)
}

func deleteRequest(url string) *http.Request {
	body, _ := json.Marshal(map[string]string{"url": url})
	req := httptest.NewRequest(http.MethodDelete, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return adminauth.WithTestAdmin(req)
}

func TestUploadCreatesVideo(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, uploadRequest(t, "Tour Video.MP4", "video/mp4", []byte("not really mp4 bytes")))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var video models.Video
	if err := json.NewDecoder(rr.Body).Decode(&video); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(video.Pathname, "videos/") || !strings.HasSuffix(video.Pathname, "-tour-video.mp4") {
		t.Errorf("pathname %q not in expected shape", video.Pathname)
	}
	if video.Size != int64(len("not really mp4 bytes")) {
		t.Errorf("size: got %d, want %d", video.Size, len("not really mp4 bytes"))
	}
	if video.ContentType != "video/mp4" {
		t.Errorf("content type: got %q, want video/mp4", video.ContentType)
	}
	if video.URL == "" {
		t.Error("video URL is empty")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := h.videos.GetByURL(ctx, video.URL); err != nil {
		t.Errorf("uploaded video not found by URL: %v", err)
	}
}

func TestUploadRequiresFileField(t *testing.T) {
	h := newTestHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "tour"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, adminauth.WithTestAdmin(req))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, uploadRequest(t, "notes.txt", "text/plain", []byte("hello")))

	if rr.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnsupportedMediaType)
	}
}

func TestUploadClassifiesByExtension(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, uploadRequest(t, "tour.mp4", "application/octet-stream", []byte("bytes")))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, http.StatusCreated, rr.Body.String())
	}
	var video models.Video
	if err := json.NewDecoder(rr.Body).Decode(&video); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if video.ContentType != "video/mp4" {
		t.Errorf("content type: got %q, want video/mp4", video.ContentType)
	}
}

func TestListRequiresAdmin(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestListReturnsVideos(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, uploadRequest(t, "tour.webm", "video/webm", []byte("webm bytes")))
	if rr.Code != http.StatusCreated {
		t.Fatalf("upload status: got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, adminauth.WithTestAdmin(httptest.NewRequest(http.MethodGet, "/", nil)))

	if rr.Code != http.StatusOK {
		t.Fatalf("list status: got %d", rr.Code)
	}
	var vids []models.Video
	if err := json.NewDecoder(rr.Body).Decode(&vids); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(vids) != 1 {
		t.Errorf("videos: got %d, want 1", len(vids))
	}
}

func TestDeleteRemovesVideo(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, uploadRequest(t, "tour.mov", "video/quicktime", []byte("mov bytes")))
	if rr.Code != http.StatusCreated {
		t.Fatalf("upload status: got %d", rr.Code)
	}
	var video models.Video
	if err := json.NewDecoder(rr.Body).Decode(&video); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rr = httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, deleteRequest(video.URL))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status: got %d (body %s)", rr.Code, rr.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := h.videos.GetByURL(ctx, video.URL); err != mongo.ErrNoDocuments {
		t.Errorf("GetByURL after delete: got %v, want ErrNoDocuments", err)
	}

	// Deleting it again reports not found.
	rr = httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, deleteRequest(video.URL))
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestDeleteUnknownURL(t *testing.T) {
	h := newTestHandler(t)

	rr := httptest.NewRecorder()
	Routes(h).ServeHTTP(rr, deleteRequest("/media/videos/missing.mp4"))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestDeleteRequiresURL(t *testing.T) {
	h := newTestHandler(t)

	for name, body := range map[string]string{
		"empty url":  `{"url":""}`,
		"no body":    "",
		"bad json":   "{",
		"wrong type": `{"url":42}`,
	} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		Routes(h).ServeHTTP(rr, adminauth.WithTestAdmin(req))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d, want %d", name, rr.Code, http.StatusBadRequest)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Tour Video.MP4":        "tour-video.mp4",
		"../../etc/passwd":      "passwd",
		"C:\\Users\\me\\v.webm": "v.webm",
		"déjà vu.mov":           "d-j--vu.mov",
		"...":                   "upload",
		"":                      "upload",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q): got %q, want %q", in, got, want)
		}
	}
}
