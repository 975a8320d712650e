package logging

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestFromContextFallsBackToProcessLogger(t *testing.T) {
	assert.Same(t, Logger(), FromContext(context.Background()))
	//nolint:staticcheck // nil context is tolerated on purpose
	assert.Same(t, Logger(), FromContext(nil))
}

func TestWithLoggerRoundTrip(t *testing.T) {
	logger, logs := observed()
	ctx := WithLogger(context.Background(), logger)

	Info(ctx, "hello", zap.String("k", "v"))
	Warn(ctx, "careful")
	Error(ctx, "boom", errors.New("cause"))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, "v", entries[0].ContextMap()["k"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "cause", entries[2].ContextMap()["error"])
}

func TestAuditEventFields(t *testing.T) {
	logger, logs := observed()
	ctx := WithLogger(context.Background(), logger)

	AuditEvent(ctx, "create", "profile", "42", AuditSuccess, map[string]any{"email": "ana@x.com"})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "create", fields["audit.action"])
	assert.Equal(t, "profile", fields["audit.resource_type"])
	assert.Equal(t, "42", fields["audit.resource_id"])
	assert.Equal(t, AuditSuccess, fields["audit.result"])
}

func TestRequestAndAccessLogger(t *testing.T) {
	logger, logs := observed()

	var seen *zap.Logger
	handler := chimiddleware.RequestID(
		RequestLogger(logger)(
			AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = FromContext(r.Context())
				w.WriteHeader(http.StatusTeapot)
			})),
		),
	)

	req := httptest.NewRequest(http.MethodGet, "/profiles", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.NotNil(t, seen)
	assert.NotSame(t, logger, seen)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request completed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["requestId"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/profiles", fields["path"])
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	assert.True(t, SetLevel("debug"))
	assert.True(t, Logger().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, SetLevel("WARN"))
	assert.False(t, Logger().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, SetLevel("loud"))
}

func TestFromContextOr(t *testing.T) {
	fallback, _ := observed()
	scoped, _ := observed()

	assert.Same(t, fallback, FromContextOr(context.Background(), fallback))
	assert.Same(t, scoped, FromContextOr(WithLogger(context.Background(), scoped), fallback))
	assert.Same(t, Logger(), FromContextOr(context.Background(), nil))
}
