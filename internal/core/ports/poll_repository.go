package ports

import (
	"context"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// PollRepository is the persistence port for polls. Identifier assignment is
// the store's responsibility (an atomic sequence), not the caller's.
type PollRepository interface {
	// Create inserts the poll and fills in its assigned ID.
	Create(ctx context.Context, poll *domain.Poll) error
	Find(ctx context.Context, pollID int64) (*domain.Poll, error)
	// ListWithTallies returns all polls, newest first, each joined with its
	// yes/total vote counts.
	ListWithTallies(ctx context.Context) ([]domain.PollSummary, error)
}
