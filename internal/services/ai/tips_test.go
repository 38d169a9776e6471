package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

var sleepProfile = models.Profile{Age: 30, Gender: "Female", Goal: "Better Sleep"}

func TestGenerateTips_Scenario(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			return
		}
		text := req.Contents[0].Parts[0].Text
		if !strings.Contains(text, `30 years old, Female, with a goal of "Better Sleep"`) {
			t.Errorf("expected profile in prompt, got %s", text)
		}
		if !strings.Contains(text, "exactly 5 wellness tips") {
			t.Errorf("expected tip count in prompt, got %s", text)
		}

		writeGeminiText(t, w, "Here are your tips:\n"+
			`{"tips":[{"id":"1","title":"Wind-Down Routine","short":"Dim lights an hour before bed","icon":"🌙","category":"Sleep"}]}`)
	}, nil)

	tips, err := svc.GenerateTips(context.Background(), sleepProfile)
	if err != nil {
		t.Fatalf("GenerateTips failed: %v", err)
	}

	want := []models.Tip{{
		ID:       "1",
		Title:    "Wind-Down Routine",
		Short:    "Dim lights an hour before bed",
		Icon:     "🌙",
		Category: "Sleep",
		Color:    models.TipPalette[0],
	}}
	if len(tips) != 1 || tips[0] != want[0] {
		t.Errorf("expected %+v, got %+v", want, tips)
	}
}

func TestGenerateTips_FillsDefaults(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeGeminiText(t, w, `{"tips":[
			{"title":"A","short":"a"},
			{"id":"","title":"B","short":"b","icon":"🥗"},
			{"id":7,"title":"C","short":"c","category":"Mental"}
		]}`)
	}, nil)

	tips, err := svc.GenerateTips(context.Background(), sleepProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 3 {
		t.Fatalf("expected 3 tips, got %d", len(tips))
	}

	tests := []struct {
		idx      int
		id       string
		icon     string
		category string
	}{
		{0, "1", models.DefaultTipIcon, models.DefaultTipCategory},
		{1, "2", "🥗", models.DefaultTipCategory},
		{2, "7", models.DefaultTipIcon, "Mental"},
	}
	for _, tt := range tests {
		tip := tips[tt.idx]
		if tip.ID != tt.id {
			t.Errorf("tip %d: expected id %q, got %q", tt.idx, tt.id, tip.ID)
		}
		if tip.Icon != tt.icon {
			t.Errorf("tip %d: expected icon %q, got %q", tt.idx, tt.icon, tip.Icon)
		}
		if tip.Category != tt.category {
			t.Errorf("tip %d: expected category %q, got %q", tt.idx, tt.category, tip.Category)
		}
	}
	if tips[1].Title != "B" || tips[1].Short != "b" {
		t.Errorf("expected present fields passed through, got %+v", tips[1])
	}
}

func TestGenerateTips_ColorsCycleByPosition(t *testing.T) {
	entries := make([]string, 0, 11)
	for i := 0; i < 11; i++ {
		entries = append(entries, fmt.Sprintf(`{"title":"T%d","short":"S%d"}`, i, i))
	}
	body := `{"tips":[` + strings.Join(entries, ",") + `]}`

	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeGeminiText(t, w, body)
	}, nil)

	tips, err := svc.GenerateTips(context.Background(), sleepProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, tip := range tips {
		if tip.Color != models.TipPalette[i%8] {
			t.Errorf("tip %d: expected color %q, got %q", i, models.TipPalette[i%8], tip.Color)
		}
	}
	if tips[8].Color != tips[0].Color {
		t.Error("expected the ninth tip to reuse the first color")
	}
}

func TestGenerateTips_MalformedTextIsNotRetried(t *testing.T) {
	var hits int32
	svc, rec := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeGeminiText(t, w, "Sorry, I can't help with that today.")
	}, nil)

	_, err := svc.GenerateTips(context.Background(), sleepProfile)
	ge := assertGenerationError(t, err, MsgTipsFailed)

	var pe *ParseError
	if !errors.As(ge, &pe) {
		t.Errorf("expected ParseError cause, got %v", ge.Err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("expected exactly 1 upstream call, got %d", got)
	}
	if len(rec.delays) != 0 {
		t.Errorf("expected no backoff, got %v", rec.delays)
	}
}

func TestGenerateTips_RetriesTransientFailures(t *testing.T) {
	var hits int32
	svc, rec := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeGeminiText(t, w, `{"tips":[{"title":"T","short":"S"}]}`)
	}, nil)

	tips, err := svc.GenerateTips(context.Background(), sleepProfile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tips) != 1 {
		t.Errorf("expected 1 tip, got %d", len(tips))
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("expected 3 upstream calls, got %d", got)
	}
	if len(rec.delays) != 2 {
		t.Errorf("expected 2 backoff delays, got %v", rec.delays)
	}
}

func TestGenerateTips_TransportExhaustion(t *testing.T) {
	var hits int32
	svc, rec := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}, nil)

	_, err := svc.GenerateTips(context.Background(), sleepProfile)
	ge := assertGenerationError(t, err, MsgTipsFailed)

	var te *TransportError
	if !errors.As(ge, &te) || te.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429 TransportError cause, got %v", ge.Err)
	}
	if got := atomic.LoadInt32(&hits); got != 4 {
		t.Errorf("expected 4 upstream calls, got %d", got)
	}
	if len(rec.delays) != 3 {
		t.Errorf("expected 3 backoff delays, got %v", rec.delays)
	}
}

func TestParseTips_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing tips", `{"items":[]}`},
		{"tips not a list", `{"tips":"none"}`},
		{"empty tips", `{"tips":[]}`},
		{"entry not an object", `{"tips":["Drink water"]}`},
		{"missing title", `{"tips":[{"short":"s"}]}`},
		{"missing short", `{"tips":[{"title":"t"}]}`},
		{"top-level array", `[{"title":"t","short":"s"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTips(tt.text); err == nil {
				t.Errorf("expected error for %s", tt.text)
			}
		})
	}
}

func TestBuildTipsPrompt_ListsCategories(t *testing.T) {
	prompt := buildTipsPrompt(sleepProfile)
	if !strings.Contains(prompt, "Categories can be: Physical, Mental, Nutrition, Sleep, or Lifestyle.") {
		t.Errorf("expected category line in prompt, got %s", prompt)
	}
	for _, c := range models.TipCategories {
		if !strings.Contains(prompt, c) {
			t.Errorf("expected category %q in prompt", c)
		}
	}
}

func TestCategoryChoices(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"Sleep"}, "Sleep"},
		{[]string{"Sleep", "Mental"}, "Sleep, or Mental"},
		{[]string{"A", "B", "C"}, "A, B, or C"},
	}
	for _, tt := range tests {
		if got := categoryChoices(tt.in); got != tt.want {
			t.Errorf("categoryChoices(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{"", false},
		{"a", true},
		{float64(0), false},
		{float64(3), true},
		{false, false},
		{true, true},
		{map[string]any{}, true},
	}
	for _, tt := range tests {
		if got := truthy(tt.in); got != tt.want {
			t.Errorf("truthy(%#v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
