package ports

import (
	"context"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// VoteRepository is the persistence port for the vote ledger. Uniqueness of
// (pollID, userName) is enforced by the store's primary key at insert time;
// Create surfaces a violation as domain.ErrDuplicateVote.
type VoteRepository interface {
	Create(ctx context.Context, vote *domain.Vote) error
	// Find returns (nil, nil) when the user has not voted on the poll.
	Find(ctx context.Context, pollID int64, userName string) (*domain.Vote, error)
	Tally(ctx context.Context, pollID int64) (domain.Tally, error)
	FindByUser(ctx context.Context, userName string) ([]domain.Vote, error)
}
