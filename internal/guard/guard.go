// Package guard holds the navigation-time predicates that gate console
// routes on session state.
package guard

import (
	"context"

	"venue-console/internal/auth"
	"venue-console/internal/observability"
)

// Decision is the outcome of evaluating a guard: either the navigation is
// allowed, or it is denied with a redirect target.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(route string) Decision {
	return Decision{RedirectTo: route}
}

// Guard evaluates route predicates against the session manager.
type Guard struct {
	auth *auth.Manager
}

func New(manager *auth.Manager) *Guard {
	return &Guard{auth: manager}
}

// RequireAuth allows navigation for authenticated sessions and redirects
// everyone else to the login route. Resolution failures fail closed.
func (g *Guard) RequireAuth(ctx context.Context) Decision {
	ok, err := g.auth.IsAuthenticated(ctx)
	if err != nil {
		observability.FromContext(ctx).Warn("auth check failed, denying navigation",
			"error", err.Error())
		return redirect(auth.RouteLogin)
	}
	if !ok {
		return redirect(auth.RouteLogin)
	}
	return allow()
}

// RequireAdmin allows navigation only for authenticated admin sessions.
// An authenticated non-admin is sent home, not to login: the distinction
// between "not signed in" and "insufficient privilege" is deliberate.
func (g *Guard) RequireAdmin(ctx context.Context) Decision {
	if d := g.RequireAuth(ctx); !d.Allow {
		return d
	}
	if !g.auth.IsAdmin() {
		return redirect(auth.RouteHome)
	}
	return allow()
}

// RequireAnonymous gates the login page: already-authenticated sessions are
// sent home. Resolution failures fail open, since refusing the login page on
// an error would strand the user.
func (g *Guard) RequireAnonymous(ctx context.Context) Decision {
	ok, err := g.auth.IsAuthenticated(ctx)
	if err != nil {
		observability.FromContext(ctx).Warn("auth check failed, allowing login page",
			"error", err.Error())
		return allow()
	}
	if ok {
		return redirect(auth.RouteHome)
	}
	return allow()
}
