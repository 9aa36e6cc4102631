package ports

import (
	"context"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// AuthService owns user identity and password verification.
type AuthService interface {
	// Register creates a new account with a fresh salt and digest.
	// Returns domain.ErrDuplicateUser when the name is taken.
	Register(ctx context.Context, userName, password string) (*domain.User, error)
	// Authenticate reports whether the password matches the stored digest.
	// Unknown users authenticate as false, never as an error.
	Authenticate(ctx context.Context, userName, password string) (bool, error)
}
