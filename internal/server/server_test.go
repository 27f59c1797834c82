package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_HealthRoutes(t *testing.T) {
	ready := true
	r := NewRouter(RouterConfig{
		APIKey: "k",
		Readiness: HealthCheckerFunc(func(context.Context) error {
			if ready {
				return nil
			}
			return errors.New("wallet not loaded")
		}),
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathHealthz, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathReadyz, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	ready = false
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathReadyz, nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatusUnavailable, body.Status)
	assert.Equal(t, "wallet not loaded", body.Message)
}

func TestRouter_VersionAndMetrics(t *testing.T) {
	r := NewRouter(RouterConfig{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathVersion, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.NotEmpty(t, info.GoVersion)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, PathMetrics, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MountedRoutesRequireKey(t *testing.T) {
	r := NewRouter(RouterConfig{APIKey: "k"})
	r.Get("/point/icon/all", func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusOK, []string{})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/point/icon/all", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/point/icon/all", nil)
	req.Header.Set(HeaderAPIKey, "k")
	req.Header.Set(HeaderRequestID, "req-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadRequest, "icon not owned")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ContentTypeJSON, rec.Header().Get(HeaderContentType))
	assert.JSONEq(t, `{"message":"icon not owned"}`, rec.Body.String())
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := loggingMiddleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/point/history", nil)
	req.Header.Set(HeaderAPIKey, "secret-key-123")
	req.Header.Set(HeaderAuthorization, "Bearer mytoken")
	req.Header.Set("User-Agent", "TestAgent")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "secret-key-123")
	assert.NotContains(t, out, "Bearer mytoken")
	assert.Contains(t, out, "TestAgent")
}
