package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

func buildTipsPrompt(profile models.Profile) string {
	return fmt.Sprintf(`
You are a wellness expert. Generate exactly 5 wellness tips for someone who is %d years old, %s, with a goal of "%s".

Return ONLY a valid JSON object in this exact format (no markdown, no extra text):
{
  "tips": [
    {
      "id": "1",
      "title": "Morning Routine",
      "short": "Brief one-line description",
      "icon": "☀️",
      "category": "Physical"
    }
  ]
}

Make tips specific, actionable, and relevant to their goal. Use diverse emoji icons that match each tip.
Categories can be: %s.
`, profile.Age, profile.Gender, profile.Goal, categoryChoices(models.TipCategories))
}

// categoryChoices renders "A, B, or C".
func categoryChoices(categories []string) string {
	switch len(categories) {
	case 0:
		return ""
	case 1:
		return categories[0]
	}
	return strings.Join(categories[:len(categories)-1], ", ") + ", or " + categories[len(categories)-1]
}

// GenerateTips asks the backend for a batch of tips tailored to profile.
// Any failure is reported as a *GenerationError carrying MsgTipsFailed.
func (s *Service) GenerateTips(ctx context.Context, profile models.Profile) ([]models.Tip, error) {
	text, err := s.call(ctx, models.GenerationOpTips, buildTipsPrompt(profile))
	if err != nil {
		return nil, fail(models.GenerationOpTips, MsgTipsFailed, err)
	}

	tips, err := parseTips(text)
	if err != nil {
		return nil, fail(models.GenerationOpTips, MsgTipsFailed, err)
	}
	return tips, nil
}

func parseTips(text string) ([]models.Tip, error) {
	obj, err := extractObject(text)
	if err != nil {
		return nil, err
	}

	raw, ok := obj["tips"].([]any)
	if !ok || len(raw) == 0 {
		return nil, ErrMissingTips
	}

	entries := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("tip %d: %w", i+1, ErrNotAnObject)
		}
		if stringField(entry, "title") == "" || stringField(entry, "short") == "" {
			return nil, fmt.Errorf("tip %d: missing title or short description", i+1)
		}
		entries = append(entries, entry)
	}

	return lo.Map(entries, toTip), nil
}

// toTip fills defaults for the optional fields and assigns the palette colour
// by position.
func toTip(entry map[string]any, i int) models.Tip {
	return models.Tip{
		ID:       lo.Ternary(truthy(entry["id"]), idString(entry["id"]), strconv.Itoa(i+1)),
		Title:    stringField(entry, "title"),
		Short:    stringField(entry, "short"),
		Icon:     lo.Ternary(stringField(entry, "icon") != "", stringField(entry, "icon"), models.DefaultTipIcon),
		Category: lo.Ternary(stringField(entry, "category") != "", stringField(entry, "category"), models.DefaultTipCategory),
		Color:    models.PaletteColor(i),
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// idString renders a truthy id value. Models occasionally emit numeric ids.
func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
