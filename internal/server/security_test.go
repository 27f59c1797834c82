package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	handler := AuthMiddleware(apiKey)(okHandler())

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{"valid key", apiKey, "/point/main/store/my-info", http.StatusOK},
		{"wrong key", "wrong-key", "/point/main/store/my-info", http.StatusUnauthorized},
		{"missing key", "", "/point/history", http.StatusUnauthorized},
		{"healthz is public", "", PathHealthz, http.StatusOK},
		{"metrics is public", "", PathMetrics, http.StatusOK},
		{"docs are public", "", PathSwagger + "index.html", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_EmptyKeyDisablesCheck(t *testing.T) {
	handler := AuthMiddleware("")(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/point/icon/all", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	var readErr error
	handler := RequestSizeLimitMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/point/icon/equip", strings.NewReader(`{"iconId":1}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, readErr, &tooLarge)
}

func TestNoStoreMiddleware(t *testing.T) {
	handler := NoStoreMiddleware(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, HeaderValueNoStore, rec.Header().Get("Cache-Control"))
}
