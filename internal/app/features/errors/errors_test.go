package errors

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/tanneryworkspace/website/internal/testutil"
)

func TestNotFoundReturns404(t *testing.T) {
	testutil.MustBootTemplates(t)

	req := testutil.NewRequest(http.MethodGet, "/nope")
	rec := testutil.NewRecorder()

	NotFound(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestInternalErrorReturns500(t *testing.T) {
	testutil.MustBootTemplates(t)

	req := testutil.NewRequest(http.MethodGet, "/error")
	rec := testutil.NewRecorder()

	InternalError(rec, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestErrorLogger(t *testing.T) {
	errLog := NewErrorLogger(zap.NewNop())
	if errLog == nil {
		t.Fatal("NewErrorLogger() returned nil")
	}

	req := testutil.NewRequest(http.MethodGet, "/test")
	errLog.Log(req, "test error", nil)
	errLog.LogWithFields(req, "test error", nil, zap.String("extra", "field"))
}
