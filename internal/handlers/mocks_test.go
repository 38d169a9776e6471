package handlers

import (
	"context"
	"errors"

	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

type MockTipGenerator struct {
	GenerateTipsFunc      func(ctx context.Context, profile models.Profile) ([]models.Tip, error)
	GenerateTipDetailFunc func(ctx context.Context, tip models.Tip, profile models.Profile) (models.TipDetail, error)
	GenerateCalls         int
	DetailCalls           int
}

func (m *MockTipGenerator) GenerateTips(ctx context.Context, profile models.Profile) ([]models.Tip, error) {
	m.GenerateCalls++
	if m.GenerateTipsFunc == nil {
		return nil, errors.New("GenerateTipsFunc not set")
	}
	return m.GenerateTipsFunc(ctx, profile)
}

func (m *MockTipGenerator) GenerateTipDetail(ctx context.Context, tip models.Tip, profile models.Profile) (models.TipDetail, error) {
	m.DetailCalls++
	if m.GenerateTipDetailFunc == nil {
		return models.TipDetail{}, errors.New("GenerateTipDetailFunc not set")
	}
	return m.GenerateTipDetailFunc(ctx, tip, profile)
}

type MockSavedTipService struct {
	ListFunc    func(ctx context.Context) ([]models.Tip, error)
	SaveFunc    func(ctx context.Context, tip models.Tip) ([]models.Tip, error)
	UnsaveFunc  func(ctx context.Context, tipID string) ([]models.Tip, error)
	IsSavedFunc func(ctx context.Context, tipID string) (bool, error)
}

func (m *MockSavedTipService) List(ctx context.Context) ([]models.Tip, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Tip{}, nil
}

func (m *MockSavedTipService) Save(ctx context.Context, tip models.Tip) ([]models.Tip, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tip)
	}
	return []models.Tip{tip}, nil
}

func (m *MockSavedTipService) Unsave(ctx context.Context, tipID string) ([]models.Tip, error) {
	if m.UnsaveFunc != nil {
		return m.UnsaveFunc(ctx, tipID)
	}
	return []models.Tip{}, nil
}

func (m *MockSavedTipService) IsSaved(ctx context.Context, tipID string) (bool, error) {
	if m.IsSavedFunc != nil {
		return m.IsSavedFunc(ctx, tipID)
	}
	return false, nil
}

type MockGenerationLogService struct {
	RecordFunc     func(ctx context.Context, entry models.GenerationLog) error
	ListRecentFunc func(ctx context.Context, limit int) ([]models.GenerationLog, error)
}

func (m *MockGenerationLogService) RecordGeneration(ctx context.Context, entry models.GenerationLog) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, entry)
	}
	return nil
}

func (m *MockGenerationLogService) ListRecent(ctx context.Context, limit int) ([]models.GenerationLog, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return []models.GenerationLog{}, nil
}
