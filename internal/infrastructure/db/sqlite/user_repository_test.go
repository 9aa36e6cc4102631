package sqlite

import (
	"context"
	"testing"

	"github.com/openpolls/polling-api/internal/core/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		UserName:     "alice1",
		Salt:         "73616c74",
		PasswordHash: "deadbeef",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := repo.FindByName(ctx, "alice1")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if got.UserName != "alice1" || got.Salt != "73616c74" || got.PasswordHash != "deadbeef" {
		t.Fatalf("unexpected user row: %+v", got)
	}
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	user := &domain.User{UserName: "bob234", Salt: "s", PasswordHash: "h"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := &domain.User{UserName: "bob234", Salt: "s2", PasswordHash: "h2"}
	if err := repo.Create(ctx, dup); err != domain.ErrDuplicateUser {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	// The original credentials must survive the failed insert.
	got, err := repo.FindByName(ctx, "bob234")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if got.Salt != "s" || got.PasswordHash != "h" {
		t.Fatalf("duplicate insert clobbered the row: %+v", got)
	}
}

func TestUserRepository_FindByName_NotFound(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	if _, err := repo.FindByName(context.Background(), "ghost1"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
