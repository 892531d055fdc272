package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-console/internal/testutil"
)

func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile, ok := GetUser(r.Context())
		require.True(t, ok)
		require.NotNil(t, profile)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	t.Run("valid_session_passes_profile", func(t *testing.T) {
		sessions := testutil.NewMockSessionValidator()
		sessions.Sessions["tok-1"] = testutil.NewTestProfile(testutil.WithUsername("alice"))

		handler := Auth(sessions)(okHandler(t))

		req := testutil.NewRequestWithCookie(t, http.MethodGet, "/orders/getorders", "session_id", "tok-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing_cookie", func(t *testing.T) {
		handler := Auth(testutil.NewMockSessionValidator())(okHandler(t))

		req := httptest.NewRequest(http.MethodGet, "/orders/getorders", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		testutil.AssertJSONError(t, w, http.StatusUnauthorized, "Not authenticated")
	})

	t.Run("unknown_token", func(t *testing.T) {
		handler := Auth(testutil.NewMockSessionValidator())(okHandler(t))

		req := testutil.NewRequestWithCookie(t, http.MethodGet, "/orders/getorders", "session_id", "bogus")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		testutil.AssertJSONError(t, w, http.StatusUnauthorized, "Invalid or expired session")
	})
}

func TestRequireAdmin(t *testing.T) {
	plain := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin_passes", func(t *testing.T) {
		sessions := testutil.NewMockSessionValidator()
		sessions.Sessions["tok-1"] = testutil.NewTestProfile(testutil.WithAdmin())

		handler := Auth(sessions)(RequireAdmin(plain))

		req := testutil.NewRequestWithCookie(t, http.MethodPost, "/categories/add", "session_id", "tok-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non_admin_forbidden", func(t *testing.T) {
		sessions := testutil.NewMockSessionValidator()
		sessions.Sessions["tok-1"] = testutil.NewTestProfile()

		handler := Auth(sessions)(RequireAdmin(plain))

		req := testutil.NewRequestWithCookie(t, http.MethodPost, "/categories/add", "session_id", "tok-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		testutil.AssertJSONError(t, w, http.StatusForbidden, "Admin privileges required")
	})

	t.Run("without_auth_context_forbidden", func(t *testing.T) {
		handler := RequireAdmin(plain)

		req := httptest.NewRequest(http.MethodPost, "/categories/add", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
