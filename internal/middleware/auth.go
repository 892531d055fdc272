package middleware

import (
	"context"
	"net/http"

	"venue-console/internal/domain"
)

type contextKey string

const (
	// UserKey carries the authenticated profile through the request context.
	UserKey contextKey = "user"
)

// SessionValidator resolves a session cookie to the profile it belongs to.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*domain.UserProfile, error)
}

// Auth rejects requests without a valid session cookie and stashes the
// resolved profile in the request context.
func Auth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_id")
			if err != nil {
				http.Error(w, `{"error":"Not authenticated"}`, http.StatusUnauthorized)
				return
			}

			profile, err := sessions.ValidateSession(r.Context(), cookie.Value)
			if err != nil {
				http.Error(w, `{"error":"Invalid or expired session"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows only admin profiles past. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := GetUser(r.Context())
		if !ok || !profile.IsAdmin {
			http.Error(w, `{"error":"Admin privileges required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser extracts the authenticated profile from the request context.
func GetUser(ctx context.Context) (*domain.UserProfile, bool) {
	profile, ok := ctx.Value(UserKey).(*domain.UserProfile)
	return profile, ok
}
