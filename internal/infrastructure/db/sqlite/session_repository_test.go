package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/openpolls/polling-api/internal/core/domain"
)

func TestSessionRepository_UpsertAndFind(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))
	ctx := context.Background()

	expires := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	session := &domain.Session{ID: "tok-1", UserName: "alice1", ExpiresAfter: expires}
	if err := repo.Upsert(ctx, session); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.Find(ctx, "tok-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.UserName != "alice1" || !got.ExpiresAfter.Equal(expires) {
		t.Fatalf("unexpected session row: %+v", got)
	}
}

func TestSessionRepository_Upsert_RefreshesExistingRow(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	if err := repo.Upsert(ctx, &domain.Session{ID: "tok-1", UserName: "alice1", ExpiresAfter: first}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	refreshed := first.Add(30 * time.Minute)
	if err := repo.Upsert(ctx, &domain.Session{ID: "tok-1", UserName: "bob234", ExpiresAfter: refreshed}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.Find(ctx, "tok-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.UserName != "bob234" || !got.ExpiresAfter.Equal(refreshed) {
		t.Fatalf("upsert did not replace the row: %+v", got)
	}
}

func TestSessionRepository_Find_NotFound(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))

	if _, err := repo.Find(context.Background(), "missing"); err != domain.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))
	ctx := context.Background()

	session := &domain.Session{ID: "tok-1", UserName: "alice1", ExpiresAfter: time.Now().UTC().Add(time.Hour)}
	if err := repo.Upsert(ctx, session); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Find(ctx, "tok-1"); err != domain.ErrSessionNotFound {
		t.Fatalf("deleted session still present: %v", err)
	}

	// Deleting again is a no-op, not an error.
	if err := repo.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []*domain.Session{
		{ID: "dead-1", UserName: "alice1", ExpiresAfter: now.Add(-time.Hour)},
		{ID: "dead-2", UserName: "bob234", ExpiresAfter: now.Add(-time.Second)},
		{ID: "live-1", UserName: "alice1", ExpiresAfter: now.Add(time.Hour)},
	}
	for _, s := range rows {
		if err := repo.Upsert(ctx, s); err != nil {
			t.Fatalf("seed %s: %v", s.ID, err)
		}
	}

	n, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows deleted, got %d", n)
	}

	if _, err := repo.Find(ctx, "live-1"); err != nil {
		t.Fatalf("live session was swept: %v", err)
	}
	for _, id := range []string{"dead-1", "dead-2"} {
		if _, err := repo.Find(ctx, id); err != domain.ErrSessionNotFound {
			t.Fatalf("expired session %s survived the sweep: %v", id, err)
		}
	}
}
