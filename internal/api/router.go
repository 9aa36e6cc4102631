package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/openpolls/polling-api/internal/api/handler"
	"github.com/openpolls/polling-api/internal/api/middleware"
	"github.com/openpolls/polling-api/internal/core/service"
	"github.com/openpolls/polling-api/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *bun.DB, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("polling"))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)
	pollRepo := sqlite.NewPollRepository(db)
	voteRepo := sqlite.NewVoteRepository(db)

	authService := service.NewAuthService(userRepo, log)
	sessionService := service.NewSessionService(sessionRepo, log)
	pollService := service.NewPollService(pollRepo, log)
	voteService := service.NewVoteService(voteRepo, pollRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessionService)
	pollHandler := handler.NewPollHandler(pollService, voteService)
	voteHandler := handler.NewVoteHandler(voteService)

	e.Use(middleware.Session(sessionService, nil))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, middleware.RequireUser())

	// --- Poll routes ---
	e.GET("/polls", pollHandler.List)
	e.POST("/polls", pollHandler.Create, middleware.RequireUser())
	e.GET("/polls/:id", pollHandler.Get)
	e.POST("/polls/:id/vote", voteHandler.Cast, middleware.RequireUser())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the database up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
