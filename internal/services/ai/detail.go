package ai

import (
	"context"
	"fmt"

	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

func buildDetailPrompt(tip models.Tip, profile models.Profile) string {
	return fmt.Sprintf(`
You are a wellness expert. Provide detailed guidance for this wellness tip:
Title: %s
Description: %s
User Profile: %d years old, %s, goal: %s

Return ONLY a valid JSON object in this exact format (no markdown, no extra text):
{
  "title": "%s",
  "explanation": "Detailed 2-3 sentence explanation of why this tip is important and how it helps achieve their goal",
  "steps": [
    "Step 1: Specific actionable instruction",
    "Step 2: Another specific actionable instruction",
    "Step 3: Another specific actionable instruction"
  ],
  "benefits": [
    "Specific benefit 1",
    "Specific benefit 2",
    "Specific benefit 3"
  ]
}

Make it personal, actionable, and encouraging. Provide 3-5 clear steps and 3-4 key benefits.
`, tip.Title, tip.Short, profile.Age, profile.Gender, profile.Goal, tip.Title)
}

// GenerateTipDetail expands one tip into an explanation, steps and benefits.
// Any failure is reported as a *GenerationError carrying MsgDetailFailed.
func (s *Service) GenerateTipDetail(ctx context.Context, tip models.Tip, profile models.Profile) (models.TipDetail, error) {
	text, err := s.call(ctx, models.GenerationOpTipDetail, buildDetailPrompt(tip, profile))
	if err != nil {
		return models.TipDetail{}, fail(models.GenerationOpTipDetail, MsgDetailFailed, err)
	}

	detail, err := parseTipDetail(text, tip)
	if err != nil {
		return models.TipDetail{}, fail(models.GenerationOpTipDetail, MsgDetailFailed, err)
	}
	return detail, nil
}

func parseTipDetail(text string, tip models.Tip) (models.TipDetail, error) {
	obj, err := extractObject(text)
	if err != nil {
		return models.TipDetail{}, err
	}

	detail := models.TipDetail{
		Title:    stringField(obj, "title"),
		Steps:    stringList(obj, "steps"),
		Benefits: stringList(obj, "benefits"),
	}
	if detail.Title == "" {
		detail.Title = tip.Title
	}
	if explanation, ok := obj["explanation"].(string); ok {
		detail.Explanation = &explanation
	}
	return detail, nil
}
