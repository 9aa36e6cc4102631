package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrUnauthenticated = errors.New("authentication required")

// SessionTTL is how long a freshly issued session stays valid.
const SessionTTL = 3600 * time.Second

// Session is a time-bounded authentication grant keyed by an opaque token.
//
// Lifecycle: nonexistent → active (Issue) → nonexistent (Revoke or sweep).
// There is no stored "expired" state; expiry is a predicate over
// ExpiresAfter that callers evaluate against the current time.
type Session struct {
	ID           string    `json:"-"`
	UserName     string    `json:"username"`
	ExpiresAfter time.Time `json:"expires_after"`
}

// ExpiredAt reports whether the session is stale at the given instant.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAfter.After(now)
}
