package ports

import (
	"context"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// PollService owns poll creation and lookup.
type PollService interface {
	// Create inserts a new poll and returns it with its store-assigned ID.
	Create(ctx context.Context, creator, title, description, notes string) (*domain.Poll, error)
	// Get returns the poll or domain.ErrPollNotFound.
	Get(ctx context.Context, pollID int64) (*domain.Poll, error)
	// List returns all polls, newest first, with vote aggregates attached.
	List(ctx context.Context) ([]domain.PollSummary, error)
}
