package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/openpolls/polling-api/internal/core/domain"
)

// Context keys set by the session middleware.
const (
	CtxUserName  = "username"
	CtxSessionID = "session_id"
)

// ctxUserName extracts the authenticated user injected by the session
// middleware. An empty value means the middleware did not run or the
// request carried no live session; the caller is rejected before any
// service call.
func ctxUserName(c echo.Context) (string, error) {
	userName, _ := c.Get(CtxUserName).(string)
	if userName == "" {
		return "", domain.ErrUnauthenticated
	}
	return userName, nil
}
