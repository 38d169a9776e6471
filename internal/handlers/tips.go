package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/HammerMeetNail/wellnesstips/internal/logging"
	"github.com/HammerMeetNail/wellnesstips/internal/models"
	"github.com/HammerMeetNail/wellnesstips/internal/services"
	"github.com/HammerMeetNail/wellnesstips/internal/services/ai"
)

type TipHandler struct {
	generator services.TipGeneratorInterface
}

func NewTipHandler(generator services.TipGeneratorInterface) *TipHandler {
	return &TipHandler{generator: generator}
}

type TipsResponse struct {
	Tips []models.Tip `json:"tips"`
}

type DetailRequest struct {
	Tip     models.Tip     `json:"tip"`
	Profile models.Profile `json:"profile"`
}

type DetailResponse struct {
	Detail models.TipDetail `json:"detail"`
}

// Generate handles POST /api/tips.
func (h *TipHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := decodeJSON(w, r, &profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile = profile.Normalized()
	if err := profile.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, profileErrorMessage(err))
		return
	}

	tips, err := h.generator.GenerateTips(r.Context(), profile)
	if err != nil {
		writeGenerationError(w, r, err, ai.MsgTipsFailed)
		return
	}

	writeJSON(w, http.StatusOK, TipsResponse{Tips: tips})
}

// Detail handles POST /api/tips/detail.
func (h *TipHandler) Detail(w http.ResponseWriter, r *http.Request) {
	var req DetailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Tip.Title) == "" {
		writeError(w, http.StatusBadRequest, "Tip title is required")
		return
	}
	req.Profile = req.Profile.Normalized()
	if err := req.Profile.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, profileErrorMessage(err))
		return
	}

	detail, err := h.generator.GenerateTipDetail(r.Context(), req.Tip, req.Profile)
	if err != nil {
		writeGenerationError(w, r, err, ai.MsgDetailFailed)
		return
	}

	writeJSON(w, http.StatusOK, DetailResponse{Detail: detail})
}

// writeGenerationError exposes only the fixed user-facing message.
func writeGenerationError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	msg := fallback
	var ge *ai.GenerationError
	if errors.As(err, &ge) {
		msg = ge.Message
	} else {
		logging.Error("Unexpected generation error", map[string]interface{}{
			"request_id": GetRequestIDFromContext(r.Context()),
			"error":      err.Error(),
		})
	}
	writeError(w, http.StatusBadGateway, msg)
}

func profileErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidAge):
		return "Age must be a positive number"
	case errors.Is(err, models.ErrGenderMissing):
		return "Gender is required"
	case errors.Is(err, models.ErrGoalMissing):
		return "Goal is required"
	default:
		return "Invalid profile"
	}
}
