package handler

import (
	"net/http"

	"github.com/airscore/airscore/internal/api/models"
	"github.com/airscore/airscore/internal/api/response"
	"github.com/airscore/airscore/internal/aqi"
	"github.com/airscore/airscore/internal/score"
)

// LocalitiesHandler handles locality aggregate endpoints.
type LocalitiesHandler struct {
	scores score.Repository
}

// NewLocalitiesHandler creates a new LocalitiesHandler.
func NewLocalitiesHandler(scores score.Repository) *LocalitiesHandler {
	return &LocalitiesHandler{scores: scores}
}

// ListLocalities handles GET /v1/localities - mean AQI per locality,
// computed over the latest scored snapshot.
func (h *LocalitiesHandler) ListLocalities(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scores.List(r.Context(), score.ListFilter{})
	if err != nil {
		response.InternalError(w, r, "failed to list station scores")
		return
	}

	resp := models.LocalitiesResponse{
		Localities: models.NewLocalityAggregates(aqi.AggregateByLocality(scores)),
	}
	if run, err := h.scores.LatestRun(r.Context()); err == nil {
		resp.RunID = run.RunID
		ts := models.Timestamp(run.StartedAt)
		resp.GeneratedAt = &ts
	}

	response.JSON(w, r, http.StatusOK, resp)
}
