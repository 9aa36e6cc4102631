package middleware

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openpolls/polling-api/internal/api/handler"
	"github.com/openpolls/polling-api/internal/core/domain"
	"github.com/openpolls/polling-api/internal/core/ports"
)

// Session resolves the session cookie and, when it names a live session,
// injects the owning user into the request context. Requests without a
// cookie, with an unknown token, or with a stale expiry pass through
// anonymously; gating is RequireUser's job.
//
// The freshness check happens here rather than in Resolve: the store hands
// back the row verbatim and this middleware compares ExpiresAfter against
// the current time, so an expired-but-unswept session never authenticates.
func Session(sessions ports.SessionService, now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(handler.SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			session, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return next(c)
				}
				return err
			}
			if session.ExpiredAt(now()) {
				return next(c)
			}

			c.Set(handler.CtxUserName, session.UserName)
			c.Set(handler.CtxSessionID, session.ID)
			return next(c)
		}
	}
}

// RequireUser rejects requests that did not resolve to an authenticated
// user. Must run after Session.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userName, _ := c.Get(handler.CtxUserName).(string); userName == "" {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
