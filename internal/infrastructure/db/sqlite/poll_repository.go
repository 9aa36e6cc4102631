package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/openpolls/polling-api/internal/core/domain"
)

type pollModel struct {
	bun.BaseModel `bun:"table:polls"`
	PollID        int64          `bun:"pollID,pk,autoincrement"`
	Title         string         `bun:"title"`
	Description   string         `bun:"description"`
	Creator       string         `bun:"creator"`
	CreatorsNotes sql.NullString `bun:"creatorsNotes"`
	CreationDate  string         `bun:"creationDate"`
}

// PollRepository persists polls. Identifier assignment is delegated to the
// table's autoincrement sequence, which is atomic under concurrent creators.
type PollRepository struct {
	db *bun.DB
}

func NewPollRepository(db *bun.DB) *PollRepository {
	return &PollRepository{db: db}
}

// Create inserts the poll and writes the assigned ID back into poll.ID.
func (r *PollRepository) Create(ctx context.Context, poll *domain.Poll) error {
	m := &pollModel{
		Title:         poll.Title,
		Description:   poll.Description,
		Creator:       poll.Creator,
		CreatorsNotes: sql.NullString{String: poll.CreatorsNotes, Valid: true},
		CreationDate:  formatTime(poll.CreationDate),
	}
	if _, err := r.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return fmt.Errorf("insert poll: %w", err)
	}
	poll.ID = m.PollID
	return nil
}

// Find returns the poll or domain.ErrPollNotFound.
func (r *PollRepository) Find(ctx context.Context, pollID int64) (*domain.Poll, error) {
	var m pollModel
	err := r.db.NewSelect().Model(&m).Where("pollID = ?", pollID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("find poll: %w", err)
	}

	created, err := parseTime(m.CreationDate)
	if err != nil {
		return nil, err
	}
	return &domain.Poll{
		ID:            m.PollID,
		Title:         m.Title,
		Description:   m.Description,
		Creator:       m.Creator,
		CreatorsNotes: m.CreatorsNotes.String,
		CreationDate:  created,
	}, nil
}

// ListWithTallies returns all polls, newest first, joined with their vote
// aggregates in one query so listing N polls stays a single round trip.
func (r *PollRepository) ListWithTallies(ctx context.Context) ([]domain.PollSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT polls.pollID, polls.title,
		       COALESCE(SUM(votes.votedYes), 0),
		       COUNT(votes.votedYes)
		FROM polls
		LEFT JOIN votes ON polls.pollID = votes.pollID
		GROUP BY polls.pollID
		ORDER BY polls.pollID DESC`)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := make([]domain.PollSummary, 0)
	for rows.Next() {
		var s domain.PollSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.YesVotes, &s.TotalVotes); err != nil {
			return nil, fmt.Errorf("scan poll summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	return summaries, nil
}
