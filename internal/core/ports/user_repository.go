package ports

import (
	"context"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// UserRepository is the persistence port for user credentials. The
// duplicate-name check and the insert must be one atomic store operation:
// implementations rely on the unique constraint, never on a prior read.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByName(ctx context.Context, userName string) (*domain.User, error)
}
