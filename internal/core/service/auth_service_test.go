package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openpolls/polling-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.UserName]; exists {
		return domain.ErrDuplicateUser
	}
	clone := *user
	r.users[user.UserName] = &clone
	return nil
}

func (r *stubUserRepo) FindByName(_ context.Context, userName string) (*domain.User, error) {
	u, ok := r.users[userName]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	user, err := svc.Register(context.Background(), "alice1", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if len(user.Salt) != 64 {
		t.Fatalf("expected 64 hex chars of salt, got %d", len(user.Salt))
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}

	h := sha512.New()
	h.Write([]byte(user.Salt))
	h.Write([]byte("pass1234"))
	if want := hex.EncodeToString(h.Sum(nil)); user.PasswordHash != want {
		t.Fatalf("stored digest does not match SHA-512(salt||password)")
	}
}

func TestAuthService_Register_FreshSaltPerUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	u1, err := svc.Register(context.Background(), "alice1", "pass1234")
	if err != nil {
		t.Fatalf("register alice1: %v", err)
	}
	u2, err := svc.Register(context.Background(), "bob234", "pass1234")
	if err != nil {
		t.Fatalf("register bob234: %v", err)
	}
	if u1.Salt == u2.Salt {
		t.Fatalf("two registrations reused the same salt")
	}
	if u1.PasswordHash == u2.PasswordHash {
		t.Fatalf("same password with different salts produced the same digest")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "al", "pass1234"); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for short name, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice1", "p w"); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad password, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("invalid registration reached the store")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "bob234", "pass1234"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob234", "other123"); err != domain.ErrDuplicateUser {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "carol1", "s3cret_1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	ok, err := svc.Authenticate(context.Background(), "carol1", "s3cret_1")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !ok {
		t.Fatalf("correct password rejected")
	}

	ok, err = svc.Authenticate(context.Background(), "carol1", "wrong123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if ok {
		t.Fatalf("wrong password accepted")
	}
}

func TestAuthService_Authenticate_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	ok, err := svc.Authenticate(context.Background(), "ghost1", "pass1234")
	if err != nil {
		t.Fatalf("unknown user should authenticate as false, not error: %v", err)
	}
	if ok {
		t.Fatalf("unknown user authenticated")
	}
}
