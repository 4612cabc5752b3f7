package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/airscore/airscore/internal/api/models"
	"github.com/airscore/airscore/internal/api/response"
	"github.com/airscore/airscore/internal/reading"
	"github.com/airscore/airscore/internal/score"
)

// RunTrigger starts a scoring run. *engine.Engine satisfies it.
type RunTrigger interface {
	Run(ctx context.Context) (*score.RunSummary, error)
}

// RunsHandler handles admin scoring run endpoints.
type RunsHandler struct {
	trigger RunTrigger
	scores  score.Repository
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(trigger RunTrigger, scores score.Repository) *RunsHandler {
	return &RunsHandler{trigger: trigger, scores: scores}
}

// TriggerRun handles POST /v1/admin/runs - run the scoring engine now.
// The run executes synchronously; concurrent triggers queue behind the
// engine's run lock.
func (h *RunsHandler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	if h.trigger == nil {
		response.ServiceUnavailable(w, r, "scoring engine is not available on this instance")
		return
	}

	run, err := h.trigger.Run(r.Context())
	if err != nil {
		if errors.Is(err, reading.ErrNoReadings) {
			response.Conflict(w, r, "no station readings available to score")
			return
		}
		response.InternalError(w, r, "scoring run failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewRun(*run))
}

// LatestRun handles GET /v1/admin/runs/latest - the most recent summary.
func (h *RunsHandler) LatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.scores.LatestRun(r.Context())
	if err != nil {
		if errors.Is(err, score.ErrNoRun) {
			response.NotFound(w, r, "no scoring run recorded yet")
			return
		}
		response.InternalError(w, r, "failed to load latest run")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewRun(*run))
}
