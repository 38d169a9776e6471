package handlers

import (
	"net/http"

	"github.com/HammerMeetNail/wellnesstips/internal/models"
)

type GoalsResponse struct {
	Goals      []string `json:"goals"`
	Categories []string `json:"categories"`
}

// Goals handles GET /api/goals with the options shown on the profile form.
func Goals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GoalsResponse{
		Goals:      models.WellnessGoals,
		Categories: models.TipCategories,
	})
}
