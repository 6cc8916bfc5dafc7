package httputil

import (
	"context"
	"net/http"
	"strings"

	"github.com/bissquit/job-board/internal/pkg/ctxlog"
	"github.com/bissquit/job-board/internal/pkg/metrics"
)

// UnauthorizedMessage is the only message the auth gate ever returns.
const UnauthorizedMessage = "unauthorized"

// CORSMiddleware creates CORS middleware that handles preflight requests
// and adds appropriate CORS headers to responses.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	originsSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && (originsSet[origin] || originsSet["*"]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Expose-Headers", "Authorization")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type contextKey string

// UserIDKey is the context key holding the authenticated user ID.
const UserIDKey contextKey = "user_id"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (userID string, err error)
}

// AuthMiddleware admits requests carrying a valid token and stores the user ID in the
// request context. Every rejection is a 401 with the same body.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := ctxlog.FromContext(r.Context())

			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.Debug("auth rejected", "reason", "missing or malformed authorization header")
				metrics.AuthRequests.WithLabelValues("rejected").Inc()
				Error(w, http.StatusUnauthorized, UnauthorizedMessage)
				return
			}

			userID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				logger.Debug("auth rejected", "reason", "invalid token")
				metrics.AuthRequests.WithLabelValues("rejected").Inc()
				Error(w, http.StatusUnauthorized, UnauthorizedMessage)
				return
			}

			metrics.AuthRequests.WithLabelValues("admitted").Inc()
			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = ctxlog.With(ctx, "user_id", userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization header value. Both
// "Bearer <token>" and a bare token are accepted.
func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !found {
		if strings.EqualFold(header, "bearer") {
			return "", false
		}
		return header, true
	}

	if !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token := strings.TrimSpace(rest)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// GetUserID extracts user ID from context.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}
