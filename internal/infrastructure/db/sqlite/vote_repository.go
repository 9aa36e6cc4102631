package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/openpolls/polling-api/internal/core/domain"
)

type voteModel struct {
	bun.BaseModel `bun:"table:votes"`
	PollID        int64  `bun:"pollID,pk"`
	UserName      string `bun:"userName,pk"`
	VotedYes      bool   `bun:"votedYes"`
}

// VoteRepository persists the vote ledger. The composite primary key
// (pollID, userName) is the only duplicate check; the repository never
// reads before inserting.
type VoteRepository struct {
	db *bun.DB
}

func NewVoteRepository(db *bun.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Create inserts the vote. A primary-key violation means the user already
// voted on this poll and maps to domain.ErrDuplicateVote; the existing row
// is never overwritten.
func (r *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	m := &voteModel{
		PollID:   vote.PollID,
		UserName: vote.UserName,
		VotedYes: vote.VotedYes,
	}
	if _, err := r.db.NewInsert().Model(m).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateVote
		}
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

// Find returns the user's vote on the poll, or (nil, nil) when absent.
func (r *VoteRepository) Find(ctx context.Context, pollID int64, userName string) (*domain.Vote, error) {
	var m voteModel
	err := r.db.NewSelect().Model(&m).
		Where("pollID = ?", pollID).
		Where("userName = ?", userName).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find vote: %w", err)
	}
	return &domain.Vote{PollID: m.PollID, UserName: m.UserName, VotedYes: m.VotedYes}, nil
}

// Tally counts yes and no votes in one aggregate query. Both counts are
// zero for a poll with no votes; the result is never undefined.
func (r *VoteRepository) Tally(ctx context.Context, pollID int64) (domain.Tally, error) {
	var yes, total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(votedYes), 0), COUNT(*)
		FROM votes
		WHERE pollID = ?`, pollID).Scan(&yes, &total)
	if err != nil {
		return domain.Tally{}, fmt.Errorf("tally votes: %w", err)
	}
	return domain.Tally{Yes: yes, No: total - yes}, nil
}

// FindByUser returns every vote the user has cast.
func (r *VoteRepository) FindByUser(ctx context.Context, userName string) ([]domain.Vote, error) {
	var ms []voteModel
	err := r.db.NewSelect().Model(&ms).Where("userName = ?", userName).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("find votes by user: %w", err)
	}
	votes := make([]domain.Vote, 0, len(ms))
	for _, m := range ms {
		votes = append(votes, domain.Vote{PollID: m.PollID, UserName: m.UserName, VotedYes: m.VotedYes})
	}
	return votes, nil
}
