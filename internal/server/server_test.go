package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/delordemm1/go-weight-goal-api/internal/modules/profile"
)

func newTestServer(t *testing.T) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	svc := profile.NewService(&profile.Config{
		Repo:   profile.NewMemoryRepository(),
		Logger: logger,
		Clock:  func() time.Time { return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC) },
	})
	return New(logger, svc), logs
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestProfileRoutesAreMounted(t *testing.T) {
	router, logs := newTestServer(t)

	body := `{"name":"Ana","email":"ana@x.com","height":170,"initialWeight":70,"targetWeight":65,"targetDate":"2025-07-01","sex":"F"}`
	req := httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/profiles/1", rec.Header().Get("Location"))

	// Request-scoped entries carry the request id.
	audits := logs.FilterMessage("audit event").All()
	require.Len(t, audits, 1)
	assert.NotEmpty(t, audits[0].ContextMap()["requestId"])

	access := logs.FilterMessage("request completed").All()
	require.Len(t, access, 1)
	assert.Equal(t, int64(http.StatusCreated), access[0].ContextMap()["status"])
}

func TestOpenAPIDocumentListsProfileOperations(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, id := range []string{"create-profile", "list-profiles", "get-profile", "get-profile-by-email", "update-profile", "delete-profile", "get-health"} {
		assert.Contains(t, rec.Body.String(), `"operationId":"`+id+`"`)
	}
}
