// Package transport provides the outbound HTTP middleware: every request
// carries the session cookies, and an authorization rejection on a business
// endpoint triggers one coordinated refresh-then-retry cycle shared across
// concurrent in-flight requests.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"venue-console/internal/auth"
	"venue-console/internal/observability"
)

// SessionRefresher is the slice of the session manager the transport needs.
// Refresh must coalesce concurrent callers into a single backend call.
type SessionRefresher interface {
	Refresh(ctx context.Context) error
}

// excludedPaths are the auth endpoints themselves. A 401 from any of these
// propagates unchanged: recovering would loop.
var excludedPaths = []string{
	auth.PathLogin,
	auth.PathLogout,
	auth.PathRefresh,
	auth.PathWhoAmI,
}

// AuthTransport is an http.RoundTripper that recovers from expired-session
// rejections. At most one retry per original request; a retried request
// failing again is a final failure.
type AuthTransport struct {
	// Base performs the actual round trips. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper
	// Refresher coordinates session refresh. Required.
	Refresher SessionRefresher
	// Jar is the cookie jar shared with the session manager. The client
	// attaches cookies before the transport runs, so the retry re-reads the
	// jar itself to pick up credentials rotated by the refresh.
	Jar http.CookieJar
	// Limiter optionally throttles outbound requests client-side.
	Limiter *rate.Limiter
}

// New builds an AuthTransport over the default transport.
func New(refresher SessionRefresher, jar http.CookieJar, limiter *rate.Limiter) *AuthTransport {
	return &AuthTransport{Refresher: refresher, Jar: jar, Limiter: limiter}
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if req.Header.Get("X-Request-ID") == "" {
		req = req.Clone(ctx)
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	resp, err := t.base().RoundTrip(req)
	t.observe(req, resp, err)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	if isExcludedPath(req.URL.Path) {
		// The auth endpoints answer for themselves; no recovery.
		return resp, nil
	}

	retry, ok := rewindRequest(req)
	if !ok {
		// The body cannot be replayed, so a retry would send a truncated
		// request. Hand the 401 back instead.
		observability.FromContext(ctx).Warn("cannot retry request with unreplayable body",
			"method", req.Method, "path", req.URL.Path)
		return resp, nil
	}

	// The original response is replaced by the retry's; release it.
	drain(resp)

	// Refresh is coalesced inside the manager: if one is already under way
	// this call waits for its result instead of starting another.
	if err := t.Refresher.Refresh(ctx); err != nil {
		observability.TransportRecoveriesTotal.WithLabelValues("refresh_failed").Inc()
		return nil, fmt.Errorf("session refresh failed: %w", err)
	}

	if t.Jar != nil {
		retry.Header.Del("Cookie")
		for _, c := range t.Jar.Cookies(retry.URL) {
			retry.AddCookie(c)
		}
	}

	observability.TransportRetriesTotal.Inc()
	retryResp, retryErr := t.base().RoundTrip(retry)
	t.observe(retry, retryResp, retryErr)
	if retryErr == nil && retryResp.StatusCode == http.StatusUnauthorized {
		observability.TransportRecoveriesTotal.WithLabelValues("retry_rejected").Inc()
	} else if retryErr == nil {
		observability.TransportRecoveriesTotal.WithLabelValues("recovered").Inc()
	}
	return retryResp, retryErr
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) observe(req *http.Request, resp *http.Response, err error) {
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	observability.TransportRequestsTotal.WithLabelValues(req.Method, status).Inc()
}

// rewindRequest clones req with a fresh body for the retry. Requests without
// a body always rewind; requests with one need GetBody.
func rewindRequest(req *http.Request) (*http.Request, bool) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	clone.Body = body
	return clone, true
}

func isExcludedPath(path string) bool {
	for _, p := range excludedPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
