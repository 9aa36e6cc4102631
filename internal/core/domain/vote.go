package domain

import "errors"

var ErrDuplicateVote = errors.New("vote already cast")

// Vote choice literals as submitted by clients.
const (
	ChoiceYes = "Yes"
	ChoiceNo  = "No"
)

// Vote records one user's choice on one poll. The (PollID, UserName) pair is
// the primary key: a second vote by the same user on the same poll must be
// rejected by the store, never overwritten.
type Vote struct {
	PollID   int64  `json:"poll_id"`
	UserName string `json:"username"`
	VotedYes bool   `json:"voted_yes"`
}

// Tally holds the aggregate counts for a poll. Both counts are zero when the
// poll has no votes; a tally is never undefined.
type Tally struct {
	Yes int64 `json:"yes"`
	No  int64 `json:"no"`
}
