package services

import (
	"context"
	"fmt"

	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

const maxHistoryLimit = 100

// GenerationLogService stores one row per generation call in Postgres.
type GenerationLogService struct {
	db DBConn
}

func NewGenerationLogService(db DBConn) *GenerationLogService {
	return &GenerationLogService{db: db}
}

func (s *GenerationLogService) RecordGeneration(ctx context.Context, entry models.GenerationLog) error {
	err := s.db.Exec(ctx, `
		INSERT INTO generation_logs (id, operation, model, status, attempts, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.Operation, entry.Model, entry.Status, entry.Attempts, entry.DurationMS, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording generation: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first. limit is clamped to 1..100.
func (s *GenerationLogService) ListRecent(ctx context.Context, limit int) ([]models.GenerationLog, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, operation, model, status, attempts, duration_ms, created_at
		FROM generation_logs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing generations: %w", err)
	}
	defer rows.Close()

	logs := []models.GenerationLog{}
	for rows.Next() {
		var entry models.GenerationLog
		if err := rows.Scan(&entry.ID, &entry.Operation, &entry.Model, &entry.Status, &entry.Attempts, &entry.DurationMS, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning generation: %w", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating generations: %w", err)
	}

	return logs, nil
}
