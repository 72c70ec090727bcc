package admin

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tanneryworkspace/website/internal/app/store/videos"
	"github.com/tanneryworkspace/website/internal/app/system/adminauth"
	"github.com/tanneryworkspace/website/internal/domain/models"
	"github.com/tanneryworkspace/website/internal/testutil"
)

const testPassphrase = "open-sesame"

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	testutil.MustBootTemplates(t)
	db := testutil.SetupTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassphrase), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	auth, err := adminauth.NewManager(
		"0123456789abcdef0123456789abcdef", "tannery-admin-test",
		string(hash), time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	return NewHandler(auth, videostore.New(db), zap.NewNop())
}

func postLogin(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return testutil.WithCSRFToken(req)
}

func TestShowLoginRenders(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.NewRecorder()
	Routes(h).ServeHTTP(rr, testutil.NewRequest(http.MethodGet, "/login"))

	rr.AssertStatus(t, http.StatusOK)
	rr.AssertContains(t, "Passphrase")
}

func TestLoginWrongPassphrase(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.NewRecorder()
	Routes(h).ServeHTTP(rr, postLogin(url.Values{"passphrase": {"wrong"}}))

	rr.AssertStatus(t, http.StatusUnauthorized)
	rr.AssertContains(t, "not right")
}

func TestLoginCorrectPassphraseRedirects(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.NewRecorder()
	Routes(h).ServeHTTP(rr, postLogin(url.Values{"passphrase": {testPassphrase}}))

	rr.AssertRedirect(t, "/admin")
	if len(rr.Result().Cookies()) == 0 {
		t.Error("login set no session cookie")
	}
}

func TestLoginHonorsReturnPath(t *testing.T) {
	h := newTestHandler(t)

	rr := testutil.NewRecorder()
	Routes(h).ServeHTTP(rr, postLogin(url.Values{
		"passphrase": {testPassphrase},
		"return":     {"/admin"},
	}))
	rr.AssertRedirect(t, "/admin")

	// Off-site return paths fall back to the dashboard.
	rr = testutil.NewRecorder()
	Routes(h).ServeHTTP(rr, postLogin(url.Values{
		"passphrase": {testPassphrase},
		"return":     {"https://evil.example.com/"},
	}))
	rr.AssertRedirect(t, "/admin")
}

func TestDashboardRequiresAdmin(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/")
	req.Header.Set("Accept", "text/html")

	rr := testutil.NewRecorder()
	Routes(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if loc := rr.Header().Get("Location"); !strings.HasPrefix(loc, "/admin/login?return=") {
		t.Errorf("redirect location: got %q, want /admin/login?return=...", loc)
	}
}

func TestDashboardListsVideos(t *testing.T) {
	h := newTestHandler(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := h.videos.Create(ctx, models.Video{
		Pathname:    "videos/1718000000000-tour.mp4",
		URL:         "/media/videos/1718000000000-tour.mp4",
		Size:        1024,
		ContentType: "video/mp4",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rr := testutil.NewRecorder()
	Routes(h).ServeHTTP(rr, testutil.NewAdminRequest(http.MethodGet, "/"))

	rr.AssertStatus(t, http.StatusOK)
	rr.AssertContains(t, "videos/1718000000000-tour.mp4")
	rr.AssertContains(t, "data-video-delete")
}

func TestSafeReturnPath(t *testing.T) {
	cases := map[string]string{
		"":                          "/admin",
		"/admin":                    "/admin",
		"/admin/videos":             "/admin/videos",
		"https://evil.example.com/": "/admin",
		"//evil.example.com":        "/admin",
		"relative/path":             "/admin",
	}
	for in, want := range cases {
		if got := safeReturnPath(in); got != want {
			t.Errorf("safeReturnPath(%q): got %q, want %q", in, got, want)
		}
	}
}
