package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-console/internal/auth"
	"venue-console/internal/domain"
	"venue-console/internal/store"
)

// newGuardFixture wires a guard over a manager whose whoami endpoint is
// scripted by the given handler.
func newGuardFixture(t *testing.T, whoami http.HandlerFunc) (*Guard, *store.SessionStore) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == auth.PathWhoAmI && whoami != nil {
			whoami(w, r)
			return
		}
		http.Error(w, `{"error":"unexpected"}`, http.StatusTeapot)
	}))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	storage := store.NewSecureStorage(filepath.Join(t.TempDir(), "session.dat"))
	sessions := store.NewSessionStore(storage, time.Hour)

	manager := auth.NewManager(auth.Options{
		BaseURL: server.URL,
		Jar:     jar,
		Store:   sessions,
		Timeout: 5 * time.Second,
	})
	return New(manager), sessions
}

func respondWhoAmI(t *testing.T, username string, admin bool) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.WhoAmIResponse{
			UserDetails: &domain.UserProfile{ID: 1, Username: username, IsAdmin: admin},
		})
	}
}

func respond401(w http.ResponseWriter, r *http.Request) {
	http.Error(w, `{"error":"nope"}`, http.StatusUnauthorized)
}

func respond500(w http.ResponseWriter, r *http.Request) {
	http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
}

func TestGuard_RequireAuth(t *testing.T) {
	t.Run("allows_authenticated", func(t *testing.T) {
		g, sessions := newGuardFixture(t, nil)
		sessions.SetUserData(domain.UserProfile{ID: 1, Username: "alice"})

		d := g.RequireAuth(context.Background())

		assert.True(t, d.Allow)
		assert.Empty(t, d.RedirectTo)
	})

	t.Run("redirects_anonymous_to_login", func(t *testing.T) {
		g, _ := newGuardFixture(t, respond401)

		d := g.RequireAuth(context.Background())

		assert.False(t, d.Allow)
		assert.Equal(t, auth.RouteLogin, d.RedirectTo)
	})

	t.Run("fails_closed_on_resolution_error", func(t *testing.T) {
		g, _ := newGuardFixture(t, respond500)

		d := g.RequireAuth(context.Background())

		assert.False(t, d.Allow)
		assert.Equal(t, auth.RouteLogin, d.RedirectTo)
	})
}

func TestGuard_RequireAdmin(t *testing.T) {
	t.Run("allows_administrator", func(t *testing.T) {
		g, sessions := newGuardFixture(t, nil)
		sessions.SetUserData(domain.UserProfile{ID: 1, Username: "alice", IsAdmin: true})

		d := g.RequireAdmin(context.Background())

		assert.True(t, d.Allow)
	})

	t.Run("authenticated_non_admin_goes_home", func(t *testing.T) {
		g, sessions := newGuardFixture(t, nil)
		sessions.SetUserData(domain.UserProfile{ID: 1, Username: "bob", IsAdmin: false})

		d := g.RequireAdmin(context.Background())

		assert.False(t, d.Allow)
		assert.Equal(t, auth.RouteHome, d.RedirectTo)
	})

	t.Run("anonymous_goes_to_login", func(t *testing.T) {
		g, _ := newGuardFixture(t, respond401)

		d := g.RequireAdmin(context.Background())

		assert.False(t, d.Allow)
		assert.Equal(t, auth.RouteLogin, d.RedirectTo)
	})

	t.Run("restored_admin_session_allows", func(t *testing.T) {
		g, _ := newGuardFixture(t, respondWhoAmI(t, "alice", true))

		d := g.RequireAdmin(context.Background())

		assert.True(t, d.Allow)
	})
}

func TestGuard_RequireAnonymous(t *testing.T) {
	t.Run("allows_anonymous", func(t *testing.T) {
		g, _ := newGuardFixture(t, respond401)

		d := g.RequireAnonymous(context.Background())

		assert.True(t, d.Allow)
	})

	t.Run("authenticated_goes_home", func(t *testing.T) {
		g, sessions := newGuardFixture(t, nil)
		sessions.SetUserData(domain.UserProfile{ID: 1, Username: "alice"})

		d := g.RequireAnonymous(context.Background())

		assert.False(t, d.Allow)
		assert.Equal(t, auth.RouteHome, d.RedirectTo)
	})

	t.Run("fails_open_on_resolution_error", func(t *testing.T) {
		g, _ := newGuardFixture(t, respond500)

		d := g.RequireAnonymous(context.Background())

		// The login screen must stay reachable when the backend is down.
		assert.True(t, d.Allow)
	})
}
