package services

import (
	"context"

	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

// TipGeneratorInterface is implemented by ai.Service.
type TipGeneratorInterface interface {
	GenerateTips(ctx context.Context, profile models.Profile) ([]models.Tip, error)
	GenerateTipDetail(ctx context.Context, tip models.Tip, profile models.Profile) (models.TipDetail, error)
}

// SavedTipServiceInterface defines the contract for the saved-tips list.
type SavedTipServiceInterface interface {
	List(ctx context.Context) ([]models.Tip, error)
	Save(ctx context.Context, tip models.Tip) ([]models.Tip, error)
	Unsave(ctx context.Context, tipID string) ([]models.Tip, error)
	IsSaved(ctx context.Context, tipID string) (bool, error)
}

// GenerationLogServiceInterface defines the contract for generation history.
type GenerationLogServiceInterface interface {
	RecordGeneration(ctx context.Context, entry models.GenerationLog) error
	ListRecent(ctx context.Context, limit int) ([]models.GenerationLog, error)
}

var (
	_ SavedTipServiceInterface      = (*SavedTipService)(nil)
	_ GenerationLogServiceInterface = (*GenerationLogService)(nil)
)
