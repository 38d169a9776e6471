package handlers

import (
	"net/http"
	"strings"

	"github.com/HammerMeetNail/wellnesstips/internal/logging"
	"github.com/HammerMeetNail/wellnesstips/internal/models"
	"github.com/HammerMeetNail/wellnesstips/internal/services"
)

type SavedTipHandler struct {
	saved services.SavedTipServiceInterface
}

func NewSavedTipHandler(saved services.SavedTipServiceInterface) *SavedTipHandler {
	return &SavedTipHandler{saved: saved}
}

type SavedTipsResponse struct {
	Tips []models.Tip `json:"tips"`
}

func (h *SavedTipHandler) List(w http.ResponseWriter, r *http.Request) {
	tips, err := h.saved.List(r.Context())
	if err != nil {
		h.storeError(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, SavedTipsResponse{Tips: tips})
}

func (h *SavedTipHandler) Save(w http.ResponseWriter, r *http.Request) {
	var tip models.Tip
	if err := decodeJSON(w, r, &tip); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(tip.ID) == "" {
		writeError(w, http.StatusBadRequest, "Tip id is required")
		return
	}
	if strings.TrimSpace(tip.Title) == "" {
		writeError(w, http.StatusBadRequest, "Tip title is required")
		return
	}

	tips, err := h.saved.Save(r.Context(), tip)
	if err != nil {
		h.storeError(w, r, "save", err)
		return
	}
	writeJSON(w, http.StatusOK, SavedTipsResponse{Tips: tips})
}

func (h *SavedTipHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "Tip id is required")
		return
	}

	tips, err := h.saved.Unsave(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "unsave", err)
		return
	}
	writeJSON(w, http.StatusOK, SavedTipsResponse{Tips: tips})
}

type SavedStatusResponse struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

// Status handles GET /api/saved/{id}.
func (h *SavedTipHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "Tip id is required")
		return
	}

	saved, err := h.saved.IsSaved(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "status", err)
		return
	}
	writeJSON(w, http.StatusOK, SavedStatusResponse{ID: id, Saved: saved})
}

func (h *SavedTipHandler) storeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	logging.Error("Saved tips store error", map[string]interface{}{
		"request_id": GetRequestIDFromContext(r.Context()),
		"action":     action,
		"error":      err.Error(),
	})
	writeError(w, http.StatusInternalServerError, "Could not update saved tips. Please try again.")
}
