package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openpolls/polling-api/internal/core/domain"
	"github.com/openpolls/polling-api/internal/core/ports"
)

const tokenBytes = 32

// SessionService manages the session table. Tokens are 256 random bits per
// login, so a user may hold any number of concurrent sessions and no token
// is derivable from the user's name.
type SessionService struct {
	repo ports.SessionRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewSessionService(repo ports.SessionRepository, log zerolog.Logger) *SessionService {
	return &SessionService{repo: repo, log: log, now: time.Now}
}

// Issue creates a session valid for exactly domain.SessionTTL from now. The
// write is an upsert: if the freshly generated token ever collides with an
// existing row, the row is replaced rather than the insert failing.
func (s *SessionService) Issue(ctx context.Context, userName string) (string, time.Duration, error) {
	token, err := generateToken()
	if err != nil {
		return "", 0, fmt.Errorf("issue session: %w", err)
	}

	session := &domain.Session{
		ID:           token,
		UserName:     userName,
		ExpiresAfter: s.now().UTC().Add(domain.SessionTTL),
	}
	if err := s.repo.Upsert(ctx, session); err != nil {
		s.log.Error().Err(err).Str("username", userName).Msg("failed to store session")
		return "", 0, err
	}

	s.log.Debug().Str("username", userName).Msg("session issued")
	return token, domain.SessionTTL, nil
}

// Resolve returns the stored session verbatim, stale expiry included.
// Freshness is the caller's concern: the auth middleware compares
// ExpiresAfter to the current time on every authenticated request.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.repo.Find(ctx, sessionID)
}

// Revoke deletes the session row. Unknown tokens are a silent no-op.
func (s *SessionService) Revoke(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

// SweepExpired removes every session whose expiry has passed. The delete is
// a single conditional statement, so it cannot race a concurrent Issue into
// removing a live session.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("removed", n).Msg("expired sessions swept")
	}
	return n, nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
