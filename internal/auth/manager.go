package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"venue-console/internal/domain"
	"venue-console/internal/observability"
	"venue-console/internal/store"
)

// Backend auth endpoints. The transport layer excludes these from
// refresh-retry recovery to prevent refresh loops.
const (
	PathLogin   = "/auth/login"
	PathLogout  = "/auth/logout"
	PathRefresh = "/auth/refresh"
	PathWhoAmI  = "/auth/whoami"
)

// Console routes used by navigation redirects.
const (
	RouteLogin = "/login"
	RouteHome  = "/home"
)

// Navigator is invoked when the manager forces a navigation, e.g. the
// redirect to the login route after logout.
type Navigator func(route string)

// LoadingState reports which operations are currently in flight. Each flag
// is set at operation start and cleared unconditionally on completion.
type LoadingState struct {
	Login          bool
	Logout         bool
	Refresh        bool
	Initialization bool
}

const (
	opLogin      = "login"
	opLogout     = "logout"
	opRefresh    = "refresh"
	opInitialize = "initialize"
)

// Manager orchestrates the session lifecycle: login, logout, restoration on
// startup, and refresh-on-demand. It is the only component that mutates the
// session store, and it is constructed once per process.
//
// Authentication status is defined by the store's SessionRecord; the
// transient authenticating/refreshing states surface through LoadingState.
type Manager struct {
	http     *http.Client
	baseURL  string
	store    *store.SessionStore
	timeout  time.Duration
	navigate Navigator
	now      func() time.Time

	mu      sync.Mutex
	loading LoadingState
	lastErr *domain.AuthError

	refreshMu      sync.Mutex
	refreshDone    chan struct{}
	refreshErr     error
	refreshSettled time.Time
	reuseWindow    time.Duration
}

// Options configures a Manager.
type Options struct {
	// BaseURL is the backend root, e.g. "http://localhost:8080".
	BaseURL string
	// Jar holds the session cookies. Required: the cookie is the credential.
	Jar http.CookieJar
	// Store is the session store the manager owns.
	Store *store.SessionStore
	// Timeout bounds every network call. Defaults to 30s.
	Timeout time.Duration
	// Navigate receives forced redirects. Optional.
	Navigate Navigator
	// RefreshReuseWindow is how long a settled refresh result keeps serving
	// late callers. Defaults to 1s.
	RefreshReuseWindow time.Duration
}

// NewManager builds the session manager. The manager's own HTTP client talks
// to the auth endpoints directly, without the retry transport: those
// endpoints never participate in refresh recovery.
func NewManager(opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RefreshReuseWindow <= 0 {
		opts.RefreshReuseWindow = time.Second
	}
	return &Manager{
		http:        &http.Client{Jar: opts.Jar},
		baseURL:     opts.BaseURL,
		store:       opts.Store,
		timeout:     opts.Timeout,
		navigate:    opts.Navigate,
		now:         time.Now,
		reuseWindow: opts.RefreshReuseWindow,
	}
}

// Store exposes the session store for read-side consumers (guards, UI).
func (m *Manager) Store() *store.SessionStore {
	return m.store
}

// Login posts credentials, then fetches the canonical profile via whoami.
// A whoami failure after a successful login leaves the session authenticated
// with an unset profile cache: a valid, stable degraded state.
func (m *Manager) Login(ctx context.Context, username, password string) (string, error) {
	m.setLoading(opLogin, true)
	m.clearError()
	defer m.setLoading(opLogin, false)
	timer := prometheus.NewTimer(observability.AuthOperationDuration.WithLabelValues(opLogin))
	defer timer.ObserveDuration()

	body, err := json.Marshal(domain.LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}

	data, aerr := m.call(ctx, http.MethodPost, PathLogin, body, true)
	if aerr != nil {
		m.setError(aerr)
		observability.AuthOperationsTotal.WithLabelValues(opLogin, "failure").Inc()
		return "", aerr
	}

	var loginResp domain.LoginResponse
	if len(data) > 0 {
		if err := json.Unmarshal(data, &loginResp); err != nil {
			observability.FromContext(ctx).Warn("unparseable login response body",
				"error", err.Error())
		}
	}

	// Login succeeded; whoami only populates the client-side profile cache.
	whoami, werr := m.call(ctx, http.MethodGet, PathWhoAmI, nil, false)
	if werr != nil {
		observability.FromContext(ctx).Warn(
			"whoami failed after login, continuing without profile cache",
			"error", werr.Error())
	} else {
		m.storeProfile(ctx, whoami)
	}

	observability.AuthOperationsTotal.WithLabelValues(opLogin, "success").Inc()
	return loginResp.Message, nil
}

// Logout invalidates the server-side session and clears local state. Local
// clearing is unconditional: a backend failure only produces a warning. The
// call never returns an error and is safe to repeat while anonymous.
func (m *Manager) Logout(ctx context.Context) {
	m.setLoading(opLogout, true)
	m.clearError()
	defer m.setLoading(opLogout, false)

	if _, aerr := m.call(ctx, http.MethodGet, PathLogout, nil, false); aerr != nil {
		observability.FromContext(ctx).Warn("backend logout failed, clearing local session anyway",
			"error", aerr.Error())
		observability.AuthOperationsTotal.WithLabelValues(opLogout, "failure").Inc()
	} else {
		observability.AuthOperationsTotal.WithLabelValues(opLogout, "success").Inc()
	}

	m.clearAndRedirect()
}

// IsAuthenticated resolves the current authentication status. A non-expired
// local record answers without a network call and extends the idle window;
// otherwise the state is reconciled with the server via whoami.
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	if m.store.HasRecord() && !m.store.IsSessionExpired() {
		m.store.UpdateSessionTimestamp()
		observability.SessionRestores.WithLabelValues("cache").Inc()
		return true, nil
	}
	return m.restore(ctx)
}

// InitializeAuthState restores the session at startup. Same resolution as
// IsAuthenticated, surfaced through the initialization loading flag.
func (m *Manager) InitializeAuthState(ctx context.Context) (bool, error) {
	m.setLoading(opInitialize, true)
	m.clearError()
	defer m.setLoading(opInitialize, false)
	return m.IsAuthenticated(ctx)
}

// restore reconciles client state with the server. A 401 is the expected
// "no session" answer and is not reported as an error; anything else failing
// populates the error slot and is returned.
func (m *Manager) restore(ctx context.Context) (bool, error) {
	data, aerr := m.call(ctx, http.MethodGet, PathWhoAmI, nil, false)
	if aerr == nil {
		m.storeProfile(ctx, data)
		observability.SessionRestores.WithLabelValues("whoami").Inc()
		return true, nil
	}

	m.store.ClearUserData()
	if aerr.Status == http.StatusUnauthorized {
		return false, nil
	}
	m.setError(aerr)
	return false, aerr
}

// IsAdmin reports the cached admin flag; false while anonymous.
func (m *Manager) IsAdmin() bool {
	return m.store.IsAdmin()
}

// Loading returns a snapshot of the in-flight operation flags.
func (m *Manager) Loading() LoadingState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// CurrentError returns the error recorded by the most recent failed
// operation, or nil. It is cleared at the start of the next attempt.
func (m *Manager) CurrentError() *domain.AuthError {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// ClearError clears the current-error slot.
func (m *Manager) ClearError() {
	m.clearError()
}

// clearAndRedirect drops local session state and navigates to the login
// route. Server-side cookies are the server's to clear.
func (m *Manager) clearAndRedirect() {
	m.store.ClearUserData()
	if m.navigate != nil {
		m.navigate(RouteLogin)
	}
}

// storeProfile parses a whoami body and replaces the cached profile. Bodies
// without user_details leave the cache untouched.
func (m *Manager) storeProfile(ctx context.Context, data []byte) {
	var resp domain.WhoAmIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		observability.FromContext(ctx).Warn("unparseable whoami response", "error", err.Error())
		return
	}
	if resp.UserDetails != nil {
		m.store.SetUserData(*resp.UserDetails)
	}
}

// call performs one bounded HTTP round trip against the backend and returns
// the response body. Failures come back classified, never as raw transport
// errors.
func (m *Manager) call(ctx context.Context, method, path string, payload []byte, login bool) ([]byte, *domain.AuthError) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, body)
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrorUnknown, 0, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return nil, domain.NewAuthError(domain.ClassifyTransportError(err), 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewAuthError(domain.ClassifyTransportError(err), 0, err)
	}
	if resp.StatusCode >= 400 {
		kind := domain.ClassifyStatus(resp.StatusCode, login)
		return nil, domain.NewAuthError(kind, resp.StatusCode,
			fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode))
	}
	return data, nil
}

func (m *Manager) setLoading(op string, v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch op {
	case opLogin:
		m.loading.Login = v
	case opLogout:
		m.loading.Logout = v
	case opRefresh:
		m.loading.Refresh = v
	case opInitialize:
		m.loading.Initialization = v
	}
}

func (m *Manager) setError(err *domain.AuthError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = err
}

func (m *Manager) clearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = nil
}
