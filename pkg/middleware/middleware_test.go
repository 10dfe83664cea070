package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	handler := RequestLogger(zap.NewNop())(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestLoggerKeepsCallerRequestID(t *testing.T) {
	handler := RequestLogger(zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestRequestLoggerNilLoggerPassesThrough(t *testing.T) {
	handler := RequestLogger(nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Request-ID"))
}

func TestOriginFilter(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantStatus int
	}{
		{"no allow list admits everything", nil, "https://evil.example", http.StatusOK},
		{"allowed origin", []string{"https://app.example"}, "https://app.example", http.StatusOK},
		{"disallowed origin", []string{"https://app.example"}, "https://evil.example", http.StatusForbidden},
		{"no origin header passes", []string{"https://app.example"}, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := OriginFilter(tt.allowed, zap.NewNop())(okHandler())

			req := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
