package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/airscore/airscore/internal/api/models"
	"github.com/airscore/airscore/internal/api/response"
	"github.com/airscore/airscore/internal/aqi"
	"github.com/airscore/airscore/internal/score"
)

// ScoresHandler handles station score endpoints.
type ScoresHandler struct {
	scores score.Repository
}

// NewScoresHandler creates a new ScoresHandler.
func NewScoresHandler(scores score.Repository) *ScoresHandler {
	return &ScoresHandler{scores: scores}
}

// validCategories covers every category a filter may name, including
// UNKNOWN for selecting unscored stations.
var validCategories = map[aqi.Category]bool{
	aqi.CategoryGood:         true,
	aqi.CategorySatisfactory: true,
	aqi.CategoryModerate:     true,
	aqi.CategoryPoor:         true,
	aqi.CategoryVeryPoor:     true,
	aqi.CategorySevere:       true,
	aqi.CategoryUnknown:      true,
}

// ListScores handles GET /v1/stations/scores - the scored snapshot,
// optionally filtered by locality and category.
func (h *ScoresHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	filter := score.ListFilter{
		Locality: r.URL.Query().Get("locality"),
	}

	if c := r.URL.Query().Get("category"); c != "" {
		category := aqi.Category(c)
		if !validCategories[category] {
			response.BadRequest(w, r, "unknown category", []models.FieldError{
				{Field: "category", Message: "must be a valid severity category", Code: "invalid_enum"},
			})
			return
		}
		filter.Category = category
	}

	scores, err := h.scores.List(r.Context(), filter)
	if err != nil {
		response.InternalError(w, r, "failed to list station scores")
		return
	}

	resp := models.ScoresResponse{Stations: models.NewStationScores(scores)}
	if run, err := h.scores.LatestRun(r.Context()); err == nil {
		resp.RunID = run.RunID
		ts := models.Timestamp(run.StartedAt)
		resp.GeneratedAt = &ts
	}

	response.JSON(w, r, http.StatusOK, resp)
}

// GetScore handles GET /v1/stations/{stationId}/score - a single station.
func (h *ScoresHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationId")

	s, err := h.scores.Get(r.Context(), stationID)
	if err != nil {
		if errors.Is(err, score.ErrScoreNotFound) {
			response.NotFound(w, r, "no score for station "+stationID)
			return
		}
		response.InternalError(w, r, "failed to load station score")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewStationScore(*s))
}
