package home

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/tanneryworkspace/website/internal/app/content"
	"github.com/tanneryworkspace/website/internal/testutil"
)

func TestIndexRendersWithoutCMS(t *testing.T) {
	testutil.MustBootTemplates(t)

	// Disabled integration: the page renders with empty event and post lists.
	svc := content.New(content.Config{}, zap.NewNop())
	h := NewHandler(svc, zap.NewNop())

	req := testutil.NewRequest(http.MethodGet, "/")
	rec := testutil.NewRecorder()
	Routes(h).ServeHTTP(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "workspace")
}

func TestRoutes(t *testing.T) {
	svc := content.New(content.Config{}, zap.NewNop())
	h := NewHandler(svc, zap.NewNop())
	if Routes(h) == nil {
		t.Fatal("Routes() returned nil")
	}
}
