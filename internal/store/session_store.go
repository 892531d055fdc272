package store

import (
	"sync"
	"time"

	"venue-console/internal/domain"
)

// Storage keys, fixed so a new build finds records written by the old one.
const (
	keyUserData         = "auth_user_data"
	keySessionTimestamp = "auth_session_timestamp"
)

// ProfileObserver is notified with the new profile (nil on clear).
type ProfileObserver func(*domain.UserProfile)

// AdminObserver is notified with the new admin flag.
type AdminObserver func(bool)

// SessionStore owns the SessionRecord: the cached profile plus the instant
// the session was established. All mutations publish to observers
// synchronously, before the mutating call returns, so a subscriber never
// sees a half-updated record.
//
// Only the session manager mutates this store; everything else reads.
type SessionStore struct {
	mu      sync.RWMutex
	storage *SecureStorage
	maxIdle time.Duration
	now     func() time.Time

	record *domain.SessionRecord

	subMu       sync.Mutex
	nextSubID   int
	profileSubs map[int]ProfileObserver
	adminSubs   map[int]AdminObserver
}

// NewSessionStore builds a store backed by storage, restoring any persisted
// record. maxIdle bounds the idle window after which the record is treated
// as absent.
func NewSessionStore(storage *SecureStorage, maxIdle time.Duration) *SessionStore {
	s := &SessionStore{
		storage:     storage,
		maxIdle:     maxIdle,
		now:         time.Now,
		profileSubs: make(map[int]ProfileObserver),
		adminSubs:   make(map[int]AdminObserver),
	}

	var profile domain.UserProfile
	var establishedAt time.Time
	if storage.Get(keyUserData, &profile) && storage.Get(keySessionTimestamp, &establishedAt) {
		s.record = &domain.SessionRecord{Profile: profile, EstablishedAt: establishedAt}
	}
	return s
}

// SetUserData replaces the session record with the given profile and a fresh
// timestamp, persists it, and publishes the new profile and admin flag.
func (s *SessionStore) SetUserData(profile domain.UserProfile) {
	s.mu.Lock()
	now := s.now()
	s.record = &domain.SessionRecord{Profile: profile, EstablishedAt: now}
	s.storage.Set(keyUserData, profile)
	s.storage.Set(keySessionTimestamp, now)
	s.mu.Unlock()

	s.publish(&profile, profile.IsAdmin)
}

// GetUserData returns the cached profile, or nil when no record exists.
// Synchronous: a read immediately after SetUserData sees the new profile.
func (s *SessionStore) GetUserData() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.record == nil {
		return nil
	}
	p := s.record.Profile
	return &p
}

// IsAdmin returns the current admin flag (false when anonymous).
func (s *SessionStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record != nil && s.record.Profile.IsAdmin
}

// HasRecord reports whether a session record exists, expired or not.
func (s *SessionStore) HasRecord() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record != nil
}

// IsSessionExpired reports true when no record exists or the record's idle
// window has elapsed. Computed from the stored timestamp on every call; no
// background timers.
func (s *SessionStore) IsSessionExpired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.record == nil {
		return true
	}
	return s.record.Expired(s.now(), s.maxIdle)
}

// UpdateSessionTimestamp extends the idle window to start now. No-op when
// no record exists.
func (s *SessionStore) UpdateSessionTimestamp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return
	}
	s.record.EstablishedAt = s.now()
	s.storage.Set(keySessionTimestamp, s.record.EstablishedAt)
}

// ClearUserData removes the persisted and in-memory record and publishes
// nil/false. Safe to call when already cleared.
func (s *SessionStore) ClearUserData() {
	s.mu.Lock()
	s.record = nil
	s.storage.Remove(keyUserData)
	s.storage.Remove(keySessionTimestamp)
	s.mu.Unlock()

	s.publish(nil, false)
}

// SubscribeProfile registers an observer for profile changes. The returned
// cancel function unregisters it.
func (s *SessionStore) SubscribeProfile(fn ProfileObserver) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.profileSubs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.profileSubs, id)
	}
}

// SubscribeAdmin registers an observer for admin-flag changes.
func (s *SessionStore) SubscribeAdmin(fn AdminObserver) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.adminSubs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.adminSubs, id)
	}
}

// StorageAvailable reports whether the backing file is usable; false means
// the record will not survive this process.
func (s *SessionStore) StorageAvailable() bool {
	return s.storage.Available()
}

// publish delivers to observers synchronously. The state mutation is already
// complete, so observers reading back through the store see consistent data.
func (s *SessionStore) publish(profile *domain.UserProfile, admin bool) {
	s.subMu.Lock()
	profileSubs := make([]ProfileObserver, 0, len(s.profileSubs))
	for _, fn := range s.profileSubs {
		profileSubs = append(profileSubs, fn)
	}
	adminSubs := make([]AdminObserver, 0, len(s.adminSubs))
	for _, fn := range s.adminSubs {
		adminSubs = append(adminSubs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range profileSubs {
		fn(profile)
	}
	for _, fn := range adminSubs {
		fn(admin)
	}
}

// SetClock replaces the time source; test hook.
func (s *SessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
