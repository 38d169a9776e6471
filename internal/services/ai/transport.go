package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/HammerMeetNail/wellnesstips/internal/logging"
)

// Transport performs a single generation call and returns the raw text.
type Transport interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini API Request/Response structs

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Usage      geminiUsage       `json:"usageMetadata"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type geminiTransport struct {
	baseURL         string
	model           string
	apiKey          string
	temperature     float64
	maxOutputTokens int
	client          *http.Client
}

func (g *geminiTransport) endpoint() string {
	return fmt.Sprintf("%s/%s:generateContent?key=%s",
		strings.TrimRight(g.baseURL, "/"), g.model, url.QueryEscape(g.apiKey))
}

func (g *geminiTransport) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     g.temperature,
			MaxOutputTokens: g.maxOutputTokens,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &TransportError{Kind: KindNetwork, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", &TransportError{Kind: KindNetwork, Err: fmt.Errorf("failed to create request: %w", redactKey(err, g.apiKey))}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &TransportError{Kind: KindNetwork, Err: redactKey(err, g.apiKey)}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return "", &TransportError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        errors.New(truncateForLog(strings.TrimSpace(string(bodyBytes)), 512)),
		}
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", &TransportError{Kind: KindEmpty, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", &TransportError{Kind: KindEmpty}
	}
	text := geminiResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", &TransportError{Kind: KindEmpty}
	}

	logging.Debug("Received response from Gemini", map[string]interface{}{
		"model":           g.model,
		"response_length": len(text),
		"finish_reason":   geminiResp.Candidates[0].FinishReason,
		"tokens_total":    geminiResp.Usage.TotalTokenCount,
	})

	return text, nil
}

// redactKey strips the API key from URL errors returned by net/http, which
// include the full request URL.
func redactKey(err error, apiKey string) error {
	if apiKey == "" {
		return err
	}
	msg := err.Error()
	escaped := url.QueryEscape(apiKey)
	if !strings.Contains(msg, apiKey) && !strings.Contains(msg, escaped) {
		return err
	}
	msg = strings.ReplaceAll(msg, escaped, "REDACTED")
	msg = strings.ReplaceAll(msg, apiKey, "REDACTED")
	return fmt.Errorf("%s", msg)
}

func truncateForLog(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
