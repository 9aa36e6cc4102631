package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openpolls/polling-api/internal/api/metrics"
	"github.com/openpolls/polling-api/internal/core/domain"
	"github.com/openpolls/polling-api/internal/core/ports"
)

// PollService implements poll creation and lookup. Poll identifiers come
// from the store's autoincrement sequence; the service never reads a count
// to pick the next ID.
type PollService struct {
	repo ports.PollRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewPollService(repo ports.PollRepository, log zerolog.Logger) *PollService {
	return &PollService{repo: repo, log: log, now: time.Now}
}

// Create validates the submitted fields and inserts the poll, stamping it
// with the current time. The returned poll carries its assigned ID.
func (s *PollService) Create(ctx context.Context, creator, title, description, notes string) (*domain.Poll, error) {
	if !domain.ValidPollTitle(title) || !domain.ValidPollDescription(description) || !domain.ValidPollNotes(notes) {
		return nil, domain.ErrInvalidInput
	}

	poll := &domain.Poll{
		Title:         title,
		Description:   description,
		Creator:       creator,
		CreatorsNotes: notes,
		CreationDate:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, poll); err != nil {
		s.log.Error().Err(err).Str("creator", creator).Msg("failed to create poll")
		return nil, err
	}

	metrics.PollsCreatedTotal.Inc()
	s.log.Info().Int64("poll_id", poll.ID).Str("creator", creator).Msg("poll created")

	return poll, nil
}

// Get returns the poll or domain.ErrPollNotFound.
func (s *PollService) Get(ctx context.Context, pollID int64) (*domain.Poll, error) {
	return s.repo.Find(ctx, pollID)
}

// List returns all polls, newest first, with their vote aggregates.
func (s *PollService) List(ctx context.Context) ([]domain.PollSummary, error) {
	return s.repo.ListWithTallies(ctx)
}
