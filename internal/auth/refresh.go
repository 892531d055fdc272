package auth

import (
	"context"
	"net/http"

	"venue-console/internal/observability"
)

// Refresh rotates the server-side session. Concurrent callers while a
// refresh is in flight wait for and receive that refresh's result instead of
// issuing their own call, and a settled result keeps serving callers for a
// short reuse window so a burst of near-simultaneous 401s collapses into one
// backend call.
//
// A refresh rejected with 401 clears local session state: the server has no
// session to rotate, so the client is anonymous.
func (m *Manager) Refresh(ctx context.Context) error {
	m.refreshMu.Lock()

	if done := m.refreshDone; done != nil {
		// A refresh is under way: join it.
		m.refreshMu.Unlock()
		observability.RefreshCallsCoalesced.Inc()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		m.refreshMu.Lock()
		err := m.refreshErr
		m.refreshMu.Unlock()
		return err
	}

	if !m.refreshSettled.IsZero() && m.now().Sub(m.refreshSettled) < m.reuseWindow {
		err := m.refreshErr
		m.refreshMu.Unlock()
		observability.RefreshCallsCoalesced.Inc()
		return err
	}

	// Become the leader. The flag is visible before the network call starts,
	// so no concurrent caller can miss it.
	done := make(chan struct{})
	m.refreshDone = done
	m.refreshMu.Unlock()

	err := m.doRefresh(ctx)

	m.refreshMu.Lock()
	m.refreshErr = err
	m.refreshSettled = m.now()
	m.refreshDone = nil
	close(done)
	m.refreshMu.Unlock()
	return err
}

// Refreshing reports whether a refresh call is currently in flight.
func (m *Manager) Refreshing() bool {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()
	return m.refreshDone != nil
}

func (m *Manager) doRefresh(ctx context.Context) error {
	m.setLoading(opRefresh, true)
	m.clearError()
	defer m.setLoading(opRefresh, false)

	_, aerr := m.call(ctx, http.MethodGet, PathRefresh, nil, false)
	if aerr == nil {
		m.store.UpdateSessionTimestamp()
		observability.AuthOperationsTotal.WithLabelValues(opRefresh, "success").Inc()
		return nil
	}

	m.setError(aerr)
	observability.AuthOperationsTotal.WithLabelValues(opRefresh, "failure").Inc()
	if aerr.Status == http.StatusUnauthorized {
		// No valid server-side session exists; drop the local one.
		observability.FromContext(ctx).Warn("refresh rejected, clearing local session")
		m.clearAndRedirect()
	}
	return aerr
}
