package handlers

import (
	"net/http"
	"strconv"

	"github.com/HammerMeetNail/wellnesstips/internal/logging"
	"github.com/HammerMeetNail/wellnesstips/internal/models"
	"github.com/HammerMeetNail/wellnesstips/internal/services"
)

type HistoryHandler struct {
	logs services.GenerationLogServiceInterface
}

func NewHistoryHandler(logs services.GenerationLogServiceInterface) *HistoryHandler {
	return &HistoryHandler{logs: logs}
}

type HistoryResponse struct {
	Generations []models.GenerationLog `json:"generations"`
}

// List handles GET /api/history?limit=N.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	logs, err := h.logs.ListRecent(r.Context(), limit)
	if err != nil {
		logging.Error("Failed to list generation history", map[string]interface{}{
			"request_id": GetRequestIDFromContext(r.Context()),
			"error":      err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "Could not load history")
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Generations: logs})
}
