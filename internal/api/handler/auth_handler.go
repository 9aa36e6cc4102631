package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openpolls/polling-api/internal/core/domain"
	"github.com/openpolls/polling-api/internal/core/ports"
)

// SessionCookie is the cookie carrying the session token. Its max-age always
// matches the session TTL on issue and is zeroed on logout so the client
// drops the token immediately.
const SessionCookie = "session"

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionService
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Username  string `json:"username"`
	ExpiresIn int    `json:"expires_in"`
}

// Register creates a new account and logs it straight in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, ttl, err := h.sessions.Issue(c.Request().Context(), user.UserName)
	if err != nil {
		return err
	}
	setSessionCookie(c, token, ttl)

	return c.JSON(http.StatusCreated, sessionResponse{
		Username:  user.UserName,
		ExpiresIn: int(ttl.Seconds()),
	})
}

// Login authenticates a user and issues a fresh session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// Malformed names and passwords can never match a stored credential, so
	// they fail exactly like a wrong password rather than leaking which rule
	// they broke.
	if !domain.ValidUserName(req.Username) || !domain.ValidPassword(req.Password) {
		return domain.ErrInvalidCredentials
	}

	ok, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}

	token, ttl, err := h.sessions.Issue(c.Request().Context(), req.Username)
	if err != nil {
		return err
	}
	setSessionCookie(c, token, ttl)

	return c.JSON(http.StatusOK, sessionResponse{
		Username:  req.Username,
		ExpiresIn: int(ttl.Seconds()),
	})
}

// Logout revokes the caller's session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxUserName(c); err != nil {
		return err
	}

	sessionID, _ := c.Get(CtxSessionID).(string)
	if err := h.sessions.Revoke(c.Request().Context(), sessionID); err != nil {
		return err
	}
	clearSessionCookie(c)

	return c.NoContent(http.StatusNoContent)
}

func setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie sends the cookie with Max-Age=0 so the client expires
// it immediately.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
