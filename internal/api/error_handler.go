package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openpolls/polling-api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain errors onto HTTP statuses in one place so
// handlers can return them untouched.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		case errors.Is(err, domain.ErrInvalidInput):
			status = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, domain.ErrInvalidCredentials):
			status = http.StatusUnauthorized
			message = "invalid username or password"
		case errors.Is(err, domain.ErrUnauthenticated),
			errors.Is(err, domain.ErrSessionNotFound):
			status = http.StatusUnauthorized
			message = "authentication required"
		case errors.Is(err, domain.ErrPollNotFound):
			status = http.StatusNotFound
			message = "poll not found"
		case errors.Is(err, domain.ErrUserNotFound):
			status = http.StatusNotFound
			message = "user not found"
		case errors.Is(err, domain.ErrDuplicateUser):
			status = http.StatusConflict
			message = "username already taken"
		case errors.Is(err, domain.ErrDuplicateVote):
			status = http.StatusConflict
			message = "vote already recorded"
		default:
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(status); err != nil {
				log.Error().Err(err).Msg("failed to write error response")
			}
			return
		}

		if err := c.JSON(status, errorResponse{Error: message}); err != nil {
			log.Error().Err(err).Msg("failed to write error response")
		}
	}
}
