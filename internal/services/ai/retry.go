package ai

import (
	"context"
	"errors"
	"time"

	"github.com/HammerMeetNail/wellnesstips/internal/logging"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retrier re-issues transport calls with linear backoff: the wait before
// retry n is BaseDelay*n. Only *TransportError failures are retried.
type Retrier struct {
	MaxRetries int
	BaseDelay  time.Duration
	Sleep      SleepFunc
}

func NewRetrier(maxRetries int, baseDelay time.Duration) Retrier {
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = defaultRetryDelay
	}
	return Retrier{MaxRetries: maxRetries, BaseDelay: baseDelay, Sleep: sleepContext}
}

// Do returns the text from the first successful attempt and the number of
// attempts made.
func (r Retrier) Do(ctx context.Context, op string, t Transport, prompt string) (string, int, error) {
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	attempts := 0
	for attempts < r.MaxRetries+1 {
		attempts++
		text, err := t.Generate(ctx, prompt)
		if err == nil {
			return text, attempts, nil
		}
		lastErr = err

		logging.Warn("Gemini API error", map[string]interface{}{
			"operation": op,
			"attempt":   attempts,
			"error":     err.Error(),
		})

		if !isRetryable(err) || attempts > r.MaxRetries {
			break
		}
		if sleepErr := sleep(ctx, r.BaseDelay*time.Duration(attempts)); sleepErr != nil {
			break
		}
	}

	var te *TransportError
	if errors.As(lastErr, &te) {
		te.Attempts = attempts
	}
	return "", attempts, lastErr
}
