package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// userModel maps the users table for bun queries. Column names are the
// historical ones; existing databases must keep working.
type userModel struct {
	bun.BaseModel `bun:"table:users"`
	UserName      string `bun:"userName,pk"`
	Salt          string `bun:"salt"`
	Hash          string `bun:"hash"`
}

// UserRepository persists user credentials.
type UserRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user. The duplicate check is the table's primary key:
// a violation maps to domain.ErrDuplicateUser, and there is no read before
// the write.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	m := &userModel{
		UserName: user.UserName,
		Salt:     user.Salt,
		Hash:     user.PasswordHash,
	}
	if _, err := r.db.NewInsert().Model(m).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByName returns the user or domain.ErrUserNotFound.
func (r *UserRepository) FindByName(ctx context.Context, userName string) (*domain.User, error) {
	var m userModel
	err := r.db.NewSelect().Model(&m).Where("userName = ?", userName).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.User{
		UserName:     m.UserName,
		Salt:         m.Salt,
		PasswordHash: m.Hash,
	}, nil
}
