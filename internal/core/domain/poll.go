package domain

import (
	"errors"
	"time"
)

var ErrPollNotFound = errors.New("poll not found")

// Poll is a yes/no question put to the user base. Immutable once created.
// CreatorsNotes is visible only to the creator.
type Poll struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Creator       string    `json:"creator"`
	CreatorsNotes string    `json:"creators_notes,omitempty"`
	CreationDate  time.Time `json:"creation_date"`
}

// PollSummary is a poll row decorated with its vote aggregates, used for
// listing pages where full tallies per poll would mean N+1 queries.
type PollSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	YesVotes   int64  `json:"yes_votes"`
	TotalVotes int64  `json:"total_votes"`
}
