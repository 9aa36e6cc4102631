package ports

import (
	"context"
	"time"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// SessionService issues, resolves, revokes and sweeps authentication grants.
type SessionService interface {
	// Issue creates a session for the user and returns its token together
	// with the TTL in seconds that the transport layer should advertise.
	Issue(ctx context.Context, userName string) (sessionID string, ttl time.Duration, err error)
	// Resolve returns the stored session verbatim, including a stale expiry
	// if the sweep has not caught up. Callers that require freshness must
	// compare ExpiresAfter to the current time. Returns
	// domain.ErrSessionNotFound when no row exists.
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
	// Revoke deletes the session if present. Revoking an unknown token is
	// a silent no-op.
	Revoke(ctx context.Context, sessionID string) error
	// SweepExpired deletes every session whose expiry is in the past and
	// returns how many rows were removed.
	SweepExpired(ctx context.Context) (int64, error)
}
