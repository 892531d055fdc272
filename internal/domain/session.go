package domain

import (
	"errors"
	"time"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")
)

// SessionRecord is the client-side proof of authentication: the profile
// returned by whoami plus the instant the session was last established or
// verified. Its existence is the sole definition of "authenticated" from the
// client's point of view; the server's cookie state is the actual source of
// truth and is reconciled by restoration.
type SessionRecord struct {
	Profile       UserProfile `json:"profile"`
	EstablishedAt time.Time   `json:"established_at"`
}

// Expired reports whether the record's idle window has elapsed at the given
// instant. Exactly at the boundary the record is still considered live.
func (r SessionRecord) Expired(now time.Time, maxIdle time.Duration) bool {
	return now.Sub(r.EstablishedAt) > maxIdle
}
