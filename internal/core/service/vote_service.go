package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openpolls/polling-api/internal/api/metrics"
	"github.com/openpolls/polling-api/internal/core/domain"
	"github.com/openpolls/polling-api/internal/core/ports"
)

// VoteService implements the vote ledger. The one-vote-per-user-per-poll
// invariant lives in the store's primary key: Cast never reads the ledger
// before inserting, so two racing duplicate submissions still yield exactly
// one recorded vote.
type VoteService struct {
	votes ports.VoteRepository
	polls ports.PollRepository
	log   zerolog.Logger
}

func NewVoteService(votes ports.VoteRepository, polls ports.PollRepository, log zerolog.Logger) *VoteService {
	return &VoteService{votes: votes, polls: polls, log: log}
}

// Cast records the user's choice. The poll must exist; a second vote by the
// same user on the same poll is rejected by the primary-key violation and
// reported as domain.ErrDuplicateVote.
func (s *VoteService) Cast(ctx context.Context, userName string, pollID int64, votedYes bool) error {
	if _, err := s.polls.Find(ctx, pollID); err != nil {
		if errors.Is(err, domain.ErrPollNotFound) {
			metrics.VotesRejectedTotal.WithLabelValues("poll_not_found").Inc()
			return domain.ErrPollNotFound
		}
		return fmt.Errorf("cast vote: %w", err)
	}

	vote := &domain.Vote{PollID: pollID, UserName: userName, VotedYes: votedYes}
	if err := s.votes.Create(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrDuplicateVote) {
			metrics.VotesRejectedTotal.WithLabelValues("duplicate").Inc()
			return domain.ErrDuplicateVote
		}
		s.log.Error().Err(err).Int64("poll_id", pollID).Str("username", userName).Msg("failed to record vote")
		return err
	}

	choice := domain.ChoiceNo
	if votedYes {
		choice = domain.ChoiceYes
	}
	metrics.VotesCastTotal.WithLabelValues(choice).Inc()
	s.log.Info().Int64("poll_id", pollID).Str("username", userName).Bool("voted_yes", votedYes).Msg("vote cast")

	return nil
}

// Tally returns the yes/no counts for a poll; (0, 0) when nobody has voted.
func (s *VoteService) Tally(ctx context.Context, pollID int64) (domain.Tally, error) {
	return s.votes.Tally(ctx, pollID)
}

// UserChoice returns the user's recorded choice, or nil if they have not
// voted on the poll.
func (s *VoteService) UserChoice(ctx context.Context, pollID int64, userName string) (*bool, error) {
	vote, err := s.votes.Find(ctx, pollID, userName)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, nil
	}
	v := vote.VotedYes
	return &v, nil
}

// ChoicesByUser returns every recorded choice for the user, keyed by poll
// ID, for decorating poll listings.
func (s *VoteService) ChoicesByUser(ctx context.Context, userName string) (map[int64]bool, error) {
	votes, err := s.votes.FindByUser(ctx, userName)
	if err != nil {
		return nil, err
	}
	choices := make(map[int64]bool, len(votes))
	for _, v := range votes {
		choices[v.PollID] = v.VotedYes
	}
	return choices, nil
}
