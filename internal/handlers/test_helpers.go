package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/haseab/retrace-frontend-sub001/internal/auth"
	pkglogger "github.com/haseab/retrace-frontend-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertJSONResponse checks that the response has the expected status and
// decodes the JSON body into target
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// NewTestAuthHandler builds an AuthHandler with a fresh tracker, the given
// expected hash, no timing delay, and a discard audit logger.
func NewTestAuthHandler(expectedHash string) *AuthHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthHandler(
		auth.NewAttemptTracker(auth.DefaultTrackerConfig()),
		auth.NewCredentialVerifier(expectedHash),
		auth.NewSessionIssuer(24*time.Hour, false),
		auth.NewTimingDelay(auth.TimingConfig{}),
		pkglogger.NewAuditLogger(logger),
	)
}

// WithChiRouteContext adds chi URL parameters to the request context so
// handlers that call chi.URLParam can be tested without a full router
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
