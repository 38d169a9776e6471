package ai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/wellnesstips/internal/config"
	"github.com/HammerMeetNail/wellnesstips/internal/logging"
	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

// UsageRecorder persists one row per generation call. Implementations must
// be safe for concurrent use.
type UsageRecorder interface {
	RecordGeneration(ctx context.Context, entry models.GenerationLog) error
}

// Service turns profiles and tips into generated content. It keeps no
// per-call state and may be shared across goroutines.
type Service struct {
	transport     Transport
	retrier       Retrier
	usage         UsageRecorder
	model         string
	configured    bool
	debug         bool
	environment   string
	debugMaxChars int
}

func NewService(cfg *config.Config, usage UsageRecorder) *Service {
	s := &Service{
		retrier:       NewRetrier(cfg.AI.MaxRetries, cfg.AI.RetryDelay),
		usage:         usage,
		model:         cfg.AI.GeminiModel,
		debug:         cfg.Server.Debug,
		environment:   cfg.Server.Environment,
		debugMaxChars: cfg.Server.DebugMaxChars,
	}

	switch {
	case cfg.AI.Stub:
		s.transport = stubTransport{}
		s.model = "stub"
		s.configured = true
	default:
		s.transport = &geminiTransport{
			baseURL:         cfg.AI.GeminiBaseURL,
			model:           cfg.AI.GeminiModel,
			apiKey:          cfg.AI.GeminiAPIKey,
			temperature:     cfg.AI.Temperature,
			maxOutputTokens: cfg.AI.MaxOutputTokens,
			client:          &http.Client{Timeout: cfg.AI.HTTPTimeout},
		}
		s.configured = strings.TrimSpace(cfg.AI.GeminiAPIKey) != ""
	}
	return s
}

// Configured reports whether generation can reach a backend.
func (s *Service) Configured() bool {
	return s.configured
}

// call dispatches prompt through the retrying transport and records usage.
func (s *Service) call(ctx context.Context, op, prompt string) (string, error) {
	start := time.Now()

	if !s.configured {
		logging.Warn("Gemini API key missing; AI generation unavailable", map[string]interface{}{
			"operation": op,
		})
		return "", ErrAINotConfigured
	}

	logging.Info("Sending request to Gemini", map[string]interface{}{
		"operation":     op,
		"model":         s.model,
		"prompt_length": len(prompt),
	})
	if s.debug && s.environment == "development" {
		logging.Debug("Gemini prompt", map[string]interface{}{
			"operation": op,
			"prompt":    truncateForLog(prompt, s.debugMaxChars),
		})
	}

	text, attempts, err := s.retrier.Do(ctx, op, s.transport, prompt)

	status := models.GenerationStatusSuccess
	if err != nil {
		status = models.GenerationStatusError
	}
	s.logUsageWithTimeout(models.GenerationLog{
		ID:         uuid.New(),
		Operation:  op,
		Model:      s.model,
		Status:     status,
		Attempts:   attempts,
		DurationMS: time.Since(start).Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	})

	return text, err
}

func (s *Service) logUsageWithTimeout(entry models.GenerationLog) {
	if s.usage == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.usage.RecordGeneration(ctx, entry); err != nil {
		logging.Error("Failed to log AI usage", map[string]interface{}{
			"error":     err.Error(),
			"operation": entry.Operation,
		})
	}
}

// fail logs the underlying cause and wraps it in the user-facing error.
func fail(op, message string, cause error) error {
	logging.Error("Generation failed", map[string]interface{}{
		"operation": op,
		"error":     cause.Error(),
	})
	return &GenerationError{Op: op, Message: message, Err: cause}
}
