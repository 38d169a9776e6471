package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestTransport(url string) *geminiTransport {
	return &geminiTransport{
		baseURL:         url,
		model:           "gemini-2.5-flash",
		apiKey:          "test-key",
		temperature:     0.7,
		maxOutputTokens: 2048,
		client:          http.DefaultClient,
	}
}

func TestGeminiTransport_RequestShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected API key 'test-key', got %s", r.URL.Query().Get("key"))
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %s", ct)
		}

		body, _ := io.ReadAll(r.Body)
		var raw map[string]any
		if err := json.Unmarshal(body, &raw); err != nil {
			t.Errorf("invalid body: %v", err)
			return
		}
		gc, _ := raw["generationConfig"].(map[string]any)
		if gc["temperature"] != 0.7 || gc["maxOutputTokens"] != float64(2048) {
			t.Errorf("unexpected generationConfig %v", gc)
		}
		contents, _ := raw["contents"].([]any)
		if len(contents) != 1 {
			t.Errorf("expected one content entry, got %v", raw["contents"])
		}

		writeGeminiText(t, w, "hello")
	}))
	defer ts.Close()

	text, err := newTestTransport(ts.URL+"/").Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello" {
		t.Errorf("expected hello, got %q", text)
	}
}

func TestGeminiTransport_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind TransportKind
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			wantKind: KindStatus,
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
			wantKind: KindEmpty,
		},
		{
			name: "no parts",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
			},
			wantKind: KindEmpty,
		},
		{
			name: "empty text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`))
			},
			wantKind: KindEmpty,
		},
		{
			name: "undecodable envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			wantKind: KindEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := newTestTransport(ts.URL).Generate(context.Background(), "prompt")
			var te *TransportError
			if !errors.As(err, &te) {
				t.Fatalf("expected *TransportError, got %v", err)
			}
			if te.Kind != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, te.Kind)
			}
		})
	}
}

func TestGeminiTransport_NetworkErrorRedactsKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	tr := newTestTransport(url)
	tr.apiKey = "super-secret"
	_, err := tr.Generate(context.Background(), "prompt")

	var te *TransportError
	if !errors.As(err, &te) || te.Kind != KindNetwork {
		t.Fatalf("expected network TransportError, got %v", err)
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Errorf("expected API key redacted, got %q", err.Error())
	}
}

func TestTransportError_Messages(t *testing.T) {
	if got := (&TransportError{Kind: KindStatus, StatusCode: 500}).Error(); got != "API request failed: status 500" {
		t.Errorf("unexpected status message %q", got)
	}
	if got := (&TransportError{Kind: KindEmpty}).Error(); got != "No response text from API" {
		t.Errorf("unexpected empty message %q", got)
	}
	withBody := &TransportError{Kind: KindStatus, StatusCode: 400, Err: errors.New(`{"error":{"message":"API key not valid"}}`)}
	if got := withBody.Error(); got != `API request failed: status 400: {"error":{"message":"API key not valid"}}` {
		t.Errorf("unexpected status message with body %q", got)
	}
	decodeFailed := &TransportError{Kind: KindEmpty, Err: errors.New("failed to decode response: unexpected EOF")}
	if got := decodeFailed.Error(); got != "No response text from API: failed to decode response: unexpected EOF" {
		t.Errorf("unexpected empty message with cause %q", got)
	}
	cause := errors.New("dial tcp: refused")
	te := &TransportError{Kind: KindNetwork, Err: cause}
	if !errors.Is(te, cause) {
		t.Error("expected cause preserved")
	}
}
