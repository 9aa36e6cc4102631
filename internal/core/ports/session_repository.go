package ports

import (
	"context"
	"time"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// SessionRepository is the persistence port for sessions.
type SessionRepository interface {
	// Upsert inserts the session, replacing any existing row with the same
	// ID in a single atomic statement.
	Upsert(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, sessionID string) (*domain.Session, error)
	// Delete removes the session if present; deleting an absent row is not
	// an error.
	Delete(ctx context.Context, sessionID string) error
	// DeleteExpired removes every row whose expiry precedes now with one
	// conditional statement, so a concurrent Upsert of a live session can
	// never be caught by the sweep.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
