package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/openpolls/polling-api/internal/core/domain"
)

type sessionModel struct {
	bun.BaseModel `bun:"table:sessions"`
	SessionID     string `bun:"sessionID,pk"`
	ExpiresAfter  string `bun:"expiresAfter"`
	UserName      string `bun:"userName"`
}

// SessionRepository persists authentication sessions.
type SessionRepository struct {
	db *bun.DB
}

func NewSessionRepository(db *bun.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Upsert writes the session in one atomic statement, replacing an existing
// row with the same ID.
func (r *SessionRepository) Upsert(ctx context.Context, session *domain.Session) error {
	m := &sessionModel{
		SessionID:    session.ID,
		ExpiresAfter: formatTime(session.ExpiresAfter),
		UserName:     session.UserName,
	}
	_, err := r.db.NewInsert().
		Model(m).
		On("CONFLICT (sessionID) DO UPDATE").
		Set("expiresAfter = EXCLUDED.expiresAfter").
		Set("userName = EXCLUDED.userName").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Find returns the stored session verbatim, expired or not, or
// domain.ErrSessionNotFound.
func (r *SessionRepository) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	var m sessionModel
	err := r.db.NewSelect().Model(&m).Where("sessionID = ?", sessionID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	expires, err := parseTime(m.ExpiresAfter)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		ID:           m.SessionID,
		UserName:     m.UserName,
		ExpiresAfter: expires,
	}, nil
}

// Delete removes the session if present; absent rows are not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.NewDelete().
		Model((*sessionModel)(nil)).
		Where("sessionID = ?", sessionID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session whose expiry precedes now. The single
// conditional DELETE cannot remove a session that a concurrent Upsert just
// refreshed: the predicate is evaluated by the store, not on a snapshot.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*sessionModel)(nil)).
		Where("expiresAfter < ?", formatTime(now)).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return n, nil
}
