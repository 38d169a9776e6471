package main

import (
	"net/http"

	"github.com/HammerMeetNail/wellnesstips/internal/handlers"
	"github.com/HammerMeetNail/wellnesstips/internal/logging"
	"github.com/HammerMeetNail/wellnesstips/internal/middleware"
	"github.com/HammerMeetNail/wellnesstips/internal/services"
)

// routerDeps collects everything the HTTP layer needs so tests can build
// the full handler chain without Postgres or Redis.
type routerDeps struct {
	Tips         services.TipGeneratorInterface
	Saved        services.SavedTipServiceInterface
	History      services.GenerationLogServiceInterface
	DB           handlers.HealthChecker
	Redis        handlers.HealthChecker
	AIConfigured bool
	RateLimiter  *middleware.RateLimiter
	SPA          http.Handler
	Secure       bool
	Logger       *logging.Logger
}

func newRouter(deps routerDeps) http.Handler {
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Redis, deps.AIConfigured)
	tipHandler := handlers.NewTipHandler(deps.Tips)
	savedHandler := handlers.NewSavedTipHandler(deps.Saved)
	historyHandler := handlers.NewHistoryHandler(deps.History)

	limit := func(h http.HandlerFunc) http.Handler {
		if deps.RateLimiter == nil {
			return h
		}
		return deps.RateLimiter.Middleware(h)
	}

	mux := http.NewServeMux()

	// Health endpoints (no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Generation endpoints call Gemini and are rate limited per client
	mux.Handle("POST /api/tips", limit(tipHandler.Generate))
	mux.Handle("POST /api/tips/detail", limit(tipHandler.Detail))

	// Saved tips
	mux.HandleFunc("GET /api/saved", savedHandler.List)
	mux.HandleFunc("POST /api/saved", savedHandler.Save)
	mux.HandleFunc("GET /api/saved/{id}", savedHandler.Status)
	mux.HandleFunc("DELETE /api/saved/{id}", savedHandler.Unsave)

	mux.HandleFunc("GET /api/goals", handlers.Goals)

	mux.HandleFunc("GET /api/history", historyHandler.List)

	if deps.SPA != nil {
		mux.Handle("GET /", deps.SPA)
	}

	// Build middleware chain (outermost last)
	var handler http.Handler = mux
	handler = middleware.NewSameOriginJSON().Protect(handler)
	handler = middleware.NewCacheControl("/assets/").Apply(handler)
	handler = middleware.NewCompress().Apply(handler)
	handler = middleware.NewSecurityHeaders(deps.Secure).Apply(handler)
	handler = middleware.NewRequestLogger(deps.Logger, "/health", "/ready", "/live").Apply(handler)
	handler = middleware.NewRequestID().Apply(handler)
	return handler
}
