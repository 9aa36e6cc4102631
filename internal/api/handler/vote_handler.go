package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openpolls/polling-api/internal/core/domain"
	"github.com/openpolls/polling-api/internal/core/ports"
)

// VoteHandler handles vote submission.
type VoteHandler struct {
	votes ports.VoteService
}

func NewVoteHandler(votes ports.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

type castVoteRequest struct {
	Choice string `json:"choice" validate:"required,votechoice"`
}

type castVoteResponse struct {
	PollID int64  `json:"poll_id"`
	Choice string `json:"choice"`
}

// Cast records the authenticated caller's yes/no choice on a poll.
//
// @Summary      Cast a vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Poll ID"
// @Param        body  body      castVoteRequest  true  "Vote choice"
// @Success      201   {object}  castVoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /polls/{id}/vote [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	userName, err := ctxUserName(c)
	if err != nil {
		return err
	}

	pollID, err := parsePollID(c)
	if err != nil {
		return err
	}

	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	votedYes := req.Choice == domain.ChoiceYes
	if err := h.votes.Cast(c.Request().Context(), userName, pollID, votedYes); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, castVoteResponse{
		PollID: pollID,
		Choice: req.Choice,
	})
}
