package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bissquit/job-board/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	tokens map[string]string
}

func (s stubValidator) ValidateToken(_ context.Context, token string) (string, error) {
	if id, ok := s.tokens[token]; ok {
		return id, nil
	}
	return "", errors.New("token is expired")
}

func newGatedHandler() http.Handler {
	validator := stubValidator{tokens: map[string]string{"good-token": "user-1"}}

	return AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Text(w, http.StatusOK, GetUserID(r.Context()))
	}))
}

func TestAuthMiddleware_UniformRejection(t *testing.T) {
	handler := newGatedHandler()

	headers := map[string]string{
		"missing":        "",
		"wrong scheme":   "Basic dXNlcjpwYXNz",
		"empty bearer":   "Bearer ",
		"invalid token":  "Bearer garbage",
		"expired token":  "Bearer expired-token",
		"bare bad token": "garbage",
	}

	var bodies []string
	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	require.NotEmpty(t, bodies)
	for _, b := range bodies {
		assert.JSONEq(t, `{"error":{"message":"unauthorized"}}`, b)
	}
}

func TestAuthMiddleware_Admits(t *testing.T) {
	handler := newGatedHandler()

	for _, header := range []string{"Bearer good-token", "bearer good-token", "good-token"} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "user-1", rec.Body.String())
		})
	}
}

func TestAuthMiddleware_CountsOutcomes(t *testing.T) {
	handler := newGatedHandler()
	admitted := testutil.ToFloat64(metrics.AuthRequests.WithLabelValues("admitted"))
	rejected := testutil.ToFloat64(metrics.AuthRequests.WithLabelValues("rejected"))

	for _, header := range []string{"Bearer good-token", "Bearer nope"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, admitted+1, testutil.ToFloat64(metrics.AuthRequests.WithLabelValues("admitted")))
	assert.Equal(t, rejected+1, testutil.ToFloat64(metrics.AuthRequests.WithLabelValues("rejected")))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "BEARER abc", token: "abc", ok: true},
		{header: "  Bearer   abc  ", token: "abc", ok: true},
		{header: "abc", token: "abc", ok: true},
		{header: "", ok: false},
		{header: "Bearer", ok: false},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "Bearer a b", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestGetUserID_Empty(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
}

func TestCORSMiddleware(t *testing.T) {
	handler := CORSMiddleware([]string{"https://jobs.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
		req.Header.Set("Origin", "https://jobs.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://jobs.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Authorization", rec.Header().Get("Access-Control-Expose-Headers"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/alljobs", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
