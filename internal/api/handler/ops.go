// Package handler provides HTTP handlers for the AirScore API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/airscore/airscore/internal/api/models"
	"github.com/airscore/airscore/internal/api/response"
	"github.com/airscore/airscore/internal/score"
)

// Pinger checks the liveness of a dependency. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
	scores    score.Repository
}

// NewOpsHandler creates a new OpsHandler. db may be nil when the server
// runs without a database (tests, local development).
func NewOpsHandler(version, buildTime string, db Pinger, scores score.Repository) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
		scores:    scores,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ready := models.Readiness{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := models.SubsystemStatus{Name: "postgres", Status: models.HealthStatusOK}
		if err := h.db.Ping(ctx); err != nil {
			detail := err.Error()
			status.Status = models.HealthStatusFail
			status.Detail = &detail
			ready.Status = models.HealthStatusFail
		}
		ready.Subsystems = append(ready.Subsystems, status)
	}

	code := http.StatusOK
	if ready.Status != models.HealthStatusOK {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, ready)
}

// StatusCheck handles GET /v1/ops/status - service status with the most
// recent scoring run, when one exists.
func (h *OpsHandler) StatusCheck(w http.ResponseWriter, r *http.Request) {
	status := models.Status{
		Status:    models.HealthStatusOK,
		Time:      models.Timestamp(time.Now()),
		Version:   h.version,
		BuildTime: h.buildTime,
	}

	if h.scores != nil {
		run, err := h.scores.LatestRun(r.Context())
		switch {
		case err == nil:
			latest := models.NewRun(*run)
			status.LatestRun = &latest
		case !errors.Is(err, score.ErrNoRun):
			response.InternalError(w, r, "failed to load latest run")
			return
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}
