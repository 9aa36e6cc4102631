package ports

import (
	"context"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// VoteService owns vote casting, uniqueness and tally computation.
type VoteService interface {
	// Cast records the user's choice on a poll. Returns
	// domain.ErrPollNotFound when the poll does not exist and
	// domain.ErrDuplicateVote when the user has already voted.
	Cast(ctx context.Context, userName string, pollID int64, votedYes bool) error
	// Tally returns the yes/no counts for a poll; both are zero when the
	// poll has no votes.
	Tally(ctx context.Context, pollID int64) (domain.Tally, error)
	// UserChoice returns the user's recorded choice, or nil if they have
	// not voted on the poll.
	UserChoice(ctx context.Context, pollID int64, userName string) (*bool, error)
	// ChoicesByUser returns every choice the user has recorded, keyed by
	// poll ID.
	ChoicesByUser(ctx context.Context, userName string) (map[int64]bool, error)
}
