package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openpolls/polling-api/internal/core/domain"
	"github.com/openpolls/polling-api/internal/core/ports"
)

// PollHandler handles poll creation, detail and listing.
type PollHandler struct {
	polls ports.PollService
	votes ports.VoteService
}

func NewPollHandler(polls ports.PollService, votes ports.VoteService) *PollHandler {
	return &PollHandler{polls: polls, votes: votes}
}

type createPollRequest struct {
	Title       string `json:"title"       validate:"required,polltitle"`
	Description string `json:"description" validate:"required,polldesc"`
	Notes       string `json:"notes"       validate:"pollnotes"`
}

type pollResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Creator       string `json:"creator"`
	CreatorsNotes string `json:"creators_notes,omitempty"`
	CreationDate  string `json:"creation_date"`
}

type pollDetailResponse struct {
	pollResponse
	YesVotes   int64   `json:"yes_votes"`
	NoVotes    int64   `json:"no_votes"`
	UserChoice *string `json:"user_choice,omitempty"`
}

type pollSummaryResponse struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	YesVotes   int64   `json:"yes_votes"`
	TotalVotes int64   `json:"total_votes"`
	UserChoice *string `json:"user_choice,omitempty"`
}

// List returns all polls, newest first, with aggregates. When the request
// carries a live session the caller's own choices are attached.
//
// @Summary      List polls
// @Tags         polls
// @Produce      json
// @Success      200  {array}  pollSummaryResponse
// @Router       /polls [get]
func (h *PollHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	summaries, err := h.polls.List(ctx)
	if err != nil {
		return err
	}

	choices := map[int64]bool{}
	if userName, _ := c.Get(CtxUserName).(string); userName != "" {
		choices, err = h.votes.ChoicesByUser(ctx, userName)
		if err != nil {
			return err
		}
	}

	resp := make([]pollSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		item := pollSummaryResponse{
			ID:         s.ID,
			Title:      s.Title,
			YesVotes:   s.YesVotes,
			TotalVotes: s.TotalVotes,
		}
		if votedYes, ok := choices[s.ID]; ok {
			item.UserChoice = choiceLiteral(votedYes)
		}
		resp = append(resp, item)
	}

	return c.JSON(http.StatusOK, resp)
}

// Create inserts a new poll owned by the authenticated caller.
//
// @Summary      Create a poll
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        body  body      createPollRequest  true  "Poll details"
// @Success      201   {object}  pollResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /polls [post]
func (h *PollHandler) Create(c echo.Context) error {
	userName, err := ctxUserName(c)
	if err != nil {
		return err
	}

	var req createPollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	poll, err := h.polls.Create(c.Request().Context(), userName, req.Title, req.Description, req.Notes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPollResponse(poll))
}

// Get returns one poll with its tally and, for authenticated callers, their
// recorded choice.
//
// @Summary      Get a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "Poll ID"
// @Success      200  {object}  pollDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /polls/{id} [get]
func (h *PollHandler) Get(c echo.Context) error {
	pollID, err := parsePollID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	poll, err := h.polls.Get(ctx, pollID)
	if err != nil {
		return err
	}

	tally, err := h.votes.Tally(ctx, pollID)
	if err != nil {
		return err
	}

	resp := pollDetailResponse{
		pollResponse: toPollResponse(poll),
		YesVotes:     tally.Yes,
		NoVotes:      tally.No,
	}

	if userName, _ := c.Get(CtxUserName).(string); userName != "" {
		choice, err := h.votes.UserChoice(ctx, pollID, userName)
		if err != nil {
			return err
		}
		if choice != nil {
			resp.UserChoice = choiceLiteral(*choice)
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// parsePollID validates and parses the :id path parameter. The digits-only
// rule rejects signs, spaces and zero before ParseInt ever runs.
func parsePollID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	if !domain.ValidPollID(raw) {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "poll id must be a positive integer")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "poll id must be a positive integer")
	}
	return id, nil
}

func toPollResponse(poll *domain.Poll) pollResponse {
	return pollResponse{
		ID:            poll.ID,
		Title:         poll.Title,
		Description:   poll.Description,
		Creator:       poll.Creator,
		CreatorsNotes: poll.CreatorsNotes,
		CreationDate:  poll.CreationDate.UTC().Format(time.RFC3339),
	}
}

func choiceLiteral(votedYes bool) *string {
	choice := domain.ChoiceNo
	if votedYes {
		choice = domain.ChoiceYes
	}
	return &choice
}
