package ai

import (
	"errors"
	"fmt"
)

const (
	MsgTipsFailed   = "Failed to generate wellness tips. Please try again."
	MsgDetailFailed = "Failed to generate tip details. Please try again."
)

var (
	ErrAINotConfigured = errors.New("AI provider is not configured")
	ErrMissingTips     = errors.New("response has no usable tips array")
	ErrNotAnObject     = errors.New("response is not a JSON object")
)

type TransportKind string

const (
	KindNetwork TransportKind = "network"
	KindStatus  TransportKind = "status"
	KindEmpty   TransportKind = "empty_response"
)

// TransportError is a failed call to the generation backend. It is the only
// error kind the retry loop will retry.
type TransportError struct {
	Kind       TransportKind
	StatusCode int
	Attempts   int
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Err != nil {
			return fmt.Sprintf("API request failed: status %d: %v", e.StatusCode, e.Err)
		}
		return fmt.Sprintf("API request failed: status %d", e.StatusCode)
	case KindEmpty:
		if e.Err != nil {
			return fmt.Sprintf("No response text from API: %v", e.Err)
		}
		return "No response text from API"
	default:
		if e.Err != nil {
			return fmt.Sprintf("API request failed: %v", e.Err)
		}
		return "API request failed"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the backend text did not contain valid JSON.
type ParseError struct {
	Preview string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON in response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GenerationError is the only error returned across the service boundary.
// Error() yields the user-facing message; the cause stays reachable through
// Unwrap for logging.
type GenerationError struct {
	Op      string
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

func isRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
