package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/DakshSitapara/wishlist/internal/service"
	"github.com/DakshSitapara/wishlist/pkg/httputil"
	"github.com/DakshSitapara/wishlist/pkg/logger"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// usernameKey is the context key for the active user.
const usernameKey contextKey = "username"

// RequireUser is middleware that resolves the active session and stores the
// username in the request context. Requests with no active session are
// rejected with 401 Unauthorized.
func RequireUser(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := auth.CurrentUser(r.Context())
			if username == "" {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
				})
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			ctx = logger.WithUser(ctx, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// usernameFromContext extracts the active username from the request context.
func usernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
