package stubserver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"venue-console/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserExists         = errors.New("user already exists")
)

// userRecord pairs a profile with its credential hash.
type userRecord struct {
	profile      domain.UserProfile
	passwordHash string
}

// UserStore holds the stub backend's accounts in memory.
type UserStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]*userRecord
}

func NewUserStore() *UserStore {
	return &UserStore{nextID: 1, users: make(map[string]*userRecord)}
}

// Add registers an account with a bcrypt-hashed password.
func (s *UserStore) Add(username, email, password string, admin bool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return ErrUserExists
	}
	s.users[username] = &userRecord{
		profile: domain.UserProfile{
			ID:       s.nextID,
			Username: username,
			Email:    email,
			IsAdmin:  admin,
		},
		passwordHash: string(hash),
	}
	s.nextID++
	return nil
}

// Authenticate verifies credentials and returns the matching profile.
func (s *UserStore) Authenticate(username, password string) (*domain.UserProfile, error) {
	s.mu.RLock()
	rec, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	p := rec.profile
	return &p, nil
}

type session struct {
	profile  domain.UserProfile
	issuedAt time.Time
}

// SessionStore issues, validates, rotates and revokes cookie sessions.
// A session cookie is valid for accessTTL after issue; the refresh endpoint
// accepts it for refreshTTL, so an expired cookie can still be rotated.
type SessionStore struct {
	mu         sync.RWMutex
	byToken    map[string]session
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewSessionStore(accessTTL, refreshTTL time.Duration) *SessionStore {
	return &SessionStore{
		byToken:    make(map[string]session),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Create issues a fresh session token for the profile.
func (s *SessionStore) Create(profile domain.UserProfile) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.byToken[token] = session{profile: profile, issuedAt: s.now()}
	s.mu.Unlock()
	return token
}

// ValidateSession resolves a token to its profile while within the access window.
func (s *SessionStore) ValidateSession(_ context.Context, token string) (*domain.UserProfile, error) {
	s.mu.RLock()
	sess, ok := s.byToken[token]
	s.mu.RUnlock()
	if !ok || s.now().Sub(sess.issuedAt) > s.accessTTL {
		return nil, ErrSessionNotFound
	}
	p := sess.profile
	return &p, nil
}

// Rotate exchanges a token for a fresh one, restarting the access window.
// Allowed while within the refresh window even if the access window lapsed.
func (s *SessionStore) Rotate(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byToken[token]
	if !ok || s.now().Sub(sess.issuedAt) > s.refreshTTL {
		delete(s.byToken, token)
		return "", ErrSessionNotFound
	}

	delete(s.byToken, token)
	fresh := uuid.NewString()
	s.byToken[fresh] = session{profile: sess.profile, issuedAt: s.now()}
	return fresh, nil
}

// Delete revokes a token. Unknown tokens are ignored.
func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.byToken, token)
	s.mu.Unlock()
}

// ExpireAll backdates every session past its access window; test hook for
// driving the client's refresh path.
func (s *SessionStore) ExpireAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.byToken {
		sess.issuedAt = s.now().Add(-s.accessTTL - time.Second)
		s.byToken[token] = sess
	}
}

// SetClock replaces the time source; test hook.
func (s *SessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
