package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HammerMeetNail/wellnesstips/internal/assets"
	"github.com/HammerMeetNail/wellnesstips/internal/config"
	"github.com/HammerMeetNail/wellnesstips/internal/database"
	"github.com/HammerMeetNail/wellnesstips/internal/logging"
	"github.com/HammerMeetNail/wellnesstips/internal/middleware"
	"github.com/HammerMeetNail/wellnesstips/internal/services"
	"github.com/HammerMeetNail/wellnesstips/internal/services/ai"
	"github.com/HammerMeetNail/wellnesstips/migrations"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := resolveLogLevel(cfg, logger)
	logger.SetLevel(level)
	logging.SetDefaultLevel(level)

	logger.Info("Starting wellness tips server...", map[string]interface{}{
		"env":     cfg.Server.Environment,
		"model":   cfg.AI.GeminiModel,
		"key_id":  cfg.AI.KeyFingerprint(),
		"ai_stub": cfg.AI.Stub,
	})

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()

	migrator, err := database.NewMigrator(cfg.Database.DSN(), migrations.FS)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()

	historyService := services.NewGenerationLogService(services.NewPoolAdapter(db.Pool))
	savedService := services.NewSavedTipService(services.NewRedisStore(redisDB.Client))
	aiService := ai.NewService(cfg, historyService)
	if !aiService.Configured() {
		logger.Warn("GEMINI_API_KEY is not set; tip generation will fail until it is configured")
	}

	spa := assets.NewSPA(cfg.Server.StaticDir)
	if !spa.Available() {
		logger.Warn("No UI build found; serving API only", map[string]interface{}{
			"static_dir": cfg.Server.StaticDir,
		})
	}

	handler := newRouter(routerDeps{
		Tips:         aiService,
		Saved:        savedService,
		History:      historyService,
		DB:           db,
		Redis:        redisDB,
		AIConfigured: aiService.Configured(),
		RateLimiter:  middleware.NewGenerationRateLimiter(redisDB.Client, resolveAIRateLimit(cfg, logger, os.LookupEnv)),
		SPA:          spa,
		Secure:       cfg.Server.Secure,
		Logger:       logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Four attempts at the HTTP timeout plus 6s of backoff must fit.
		WriteTimeout: 4*cfg.AI.HTTPTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}

// resolveLogLevel applies LOG_LEVEL; DEBUG=true always wins.
func resolveLogLevel(cfg *config.Config, logger *logging.Logger) logging.Level {
	if cfg.Server.Debug {
		return logging.LevelDebug
	}
	level, err := logging.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid LOG_LEVEL; using info", map[string]interface{}{
			"value": cfg.Server.LogLevel,
		})
		return logging.LevelInfo
	}
	return level
}

// resolveAIRateLimit loosens the limit in development unless AI_RATE_LIMIT
// is set explicitly.
func resolveAIRateLimit(cfg *config.Config, logger *logging.Logger, lookupEnv func(string) (string, bool)) int64 {
	limit := cfg.RateLimit.AIPerHour
	if _, explicit := lookupEnv("AI_RATE_LIMIT"); !explicit && cfg.Server.Environment == "development" {
		limit = 500
		logger.Info("Using development AI rate limit", map[string]interface{}{"limit": limit})
	}
	if limit <= 0 {
		logger.Warn("AI rate limiting disabled", map[string]interface{}{"limit": limit})
	}
	return limit
}
