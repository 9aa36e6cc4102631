package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openpolls/polling-api/internal/api/handler"
	"github.com/openpolls/polling-api/internal/core/domain"
)

type stubSessionService struct {
	sessions map[string]*domain.Session
}

func (s *stubSessionService) Issue(context.Context, string) (string, time.Duration, error) {
	return "", 0, nil
}

func (s *stubSessionService) Resolve(_ context.Context, sessionID string) (*domain.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionService) Revoke(context.Context, string) error {
	return nil
}

func (s *stubSessionService) SweepExpired(context.Context) (int64, error) {
	return 0, nil
}

func runSession(t *testing.T, sessions *stubSessionService, now time.Time, cookie *http.Cookie) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/polls", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(sessions, func() time.Time { return now })
	next := func(echo.Context) error { return nil }
	if err := mw(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return c
}

func TestSession_LiveCookie(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := &stubSessionService{sessions: map[string]*domain.Session{
		"tok-1": {ID: "tok-1", UserName: "alice1", ExpiresAfter: now.Add(time.Hour)},
	}}

	c := runSession(t, sessions, now, &http.Cookie{Name: handler.SessionCookie, Value: "tok-1"})

	if got, _ := c.Get(handler.CtxUserName).(string); got != "alice1" {
		t.Fatalf("expected username in context, got %q", got)
	}
	if got, _ := c.Get(handler.CtxSessionID).(string); got != "tok-1" {
		t.Fatalf("expected session id in context, got %q", got)
	}
}

func TestSession_NoCookie(t *testing.T) {
	sessions := &stubSessionService{sessions: map[string]*domain.Session{}}

	c := runSession(t, sessions, time.Now(), nil)

	if got := c.Get(handler.CtxUserName); got != nil {
		t.Fatalf("anonymous request got a username: %v", got)
	}
}

func TestSession_UnknownToken(t *testing.T) {
	sessions := &stubSessionService{sessions: map[string]*domain.Session{}}

	c := runSession(t, sessions, time.Now(), &http.Cookie{Name: handler.SessionCookie, Value: "nope"})

	if got := c.Get(handler.CtxUserName); got != nil {
		t.Fatalf("unknown token resolved to a user: %v", got)
	}
}

// A stored session whose expiry has passed must read as anonymous even
// before the sweeper removes the row.
func TestSession_ExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := &stubSessionService{sessions: map[string]*domain.Session{
		"tok-1": {ID: "tok-1", UserName: "alice1", ExpiresAfter: now.Add(-time.Second)},
	}}

	c := runSession(t, sessions, now, &http.Cookie{Name: handler.SessionCookie, Value: "tok-1"})

	if got := c.Get(handler.CtxUserName); got != nil {
		t.Fatalf("expired session authenticated: %v", got)
	}
}

func TestSession_ExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := &stubSessionService{sessions: map[string]*domain.Session{
		"tok-1": {ID: "tok-1", UserName: "alice1", ExpiresAfter: now},
	}}

	c := runSession(t, sessions, now, &http.Cookie{Name: handler.SessionCookie, Value: "tok-1"})

	if got := c.Get(handler.CtxUserName); got != nil {
		t.Fatalf("session expiring exactly now authenticated: %v", got)
	}
}

func TestRequireUser(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireUser()

	req := httptest.NewRequest(http.MethodPost, "/polls", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw(next)(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for anonymous request, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/polls", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(handler.CtxUserName, "alice1")

	if err := mw(next)(c); err != nil {
		t.Fatalf("authenticated request rejected: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
