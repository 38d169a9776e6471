package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/HammerMeetNail/wellnesstips/internal/logging"
	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

const SavedTipsKey = "wellness_saved_tips"

// SavedTipService keeps the saved-tips list under a single key. Tips are
// unique by ID and kept in the order they were saved. Writes go through
// KVStore.Update so instances sharing a store do not drop each other's saves.
type SavedTipService struct {
	store KVStore
}

func NewSavedTipService(store KVStore) *SavedTipService {
	return &SavedTipService{store: store}
}

// List returns the saved tips. A missing or unreadable value yields an
// empty list; only store errors are returned.
func (s *SavedTipService) List(ctx context.Context) ([]models.Tip, error) {
	raw, found, err := s.store.Get(ctx, SavedTipsKey)
	if err != nil {
		return nil, fmt.Errorf("loading saved tips: %w", err)
	}
	return decodeSavedTips(raw, found), nil
}

// Save appends tip unless a tip with the same ID is already saved.
func (s *SavedTipService) Save(ctx context.Context, tip models.Tip) ([]models.Tip, error) {
	var tips []models.Tip
	err := s.store.Update(ctx, SavedTipsKey, func(current string, found bool) (string, error) {
		tips = decodeSavedTips(current, found)
		if lo.ContainsBy(tips, func(t models.Tip) bool { return t.ID == tip.ID }) {
			return current, nil
		}
		tips = append(tips, tip)
		return encodeSavedTips(tips)
	})
	if err != nil {
		return nil, fmt.Errorf("saving tips: %w", err)
	}
	return tips, nil
}

// Unsave removes the tip with the given ID. Removing an unknown ID is not an
// error.
func (s *SavedTipService) Unsave(ctx context.Context, tipID string) ([]models.Tip, error) {
	var tips []models.Tip
	err := s.store.Update(ctx, SavedTipsKey, func(current string, found bool) (string, error) {
		tips = lo.Filter(decodeSavedTips(current, found), func(t models.Tip, _ int) bool { return t.ID != tipID })
		return encodeSavedTips(tips)
	})
	if err != nil {
		return nil, fmt.Errorf("saving tips: %w", err)
	}
	return tips, nil
}

func (s *SavedTipService) IsSaved(ctx context.Context, tipID string) (bool, error) {
	tips, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return lo.ContainsBy(tips, func(t models.Tip) bool { return t.ID == tipID }), nil
}

func decodeSavedTips(raw string, found bool) []models.Tip {
	if !found || raw == "" {
		return []models.Tip{}
	}

	var tips []models.Tip
	if err := json.Unmarshal([]byte(raw), &tips); err != nil {
		logging.Error("Error loading saved tips", map[string]interface{}{
			"error": err.Error(),
		})
		return []models.Tip{}
	}
	if tips == nil {
		tips = []models.Tip{}
	}
	return tips
}

func encodeSavedTips(tips []models.Tip) (string, error) {
	data, err := json.Marshal(tips)
	if err != nil {
		return "", fmt.Errorf("encoding saved tips: %w", err)
	}
	return string(data), nil
}
