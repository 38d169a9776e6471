package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenerationOpTips      = "tips"
	GenerationOpTipDetail = "tip_detail"

	GenerationStatusSuccess = "success"
	GenerationStatusError   = "error"
)

// GenerationLog is one row of the generation history.
type GenerationLog struct {
	ID         uuid.UUID `json:"id"`
	Operation  string    `json:"operation"`
	Model      string    `json:"model"`
	Status     string    `json:"status"`
	Attempts   int       `json:"attempts"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
