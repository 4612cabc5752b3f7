package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/airscore/airscore/internal/api/models"
	"github.com/airscore/airscore/internal/api/response"
	"github.com/airscore/airscore/internal/aqi"
	"github.com/airscore/airscore/internal/breakpoints"
)

// BreakpointsHandler handles admin breakpoint table endpoints.
type BreakpointsHandler struct {
	bps *breakpoints.Service
}

// NewBreakpointsHandler creates a new BreakpointsHandler.
func NewBreakpointsHandler(bps *breakpoints.Service) *BreakpointsHandler {
	return &BreakpointsHandler{bps: bps}
}

// ReplaceBreakpoints handles PUT /v1/admin/breakpoints - replace the
// configured table. The replacement is validated in full before anything
// is stored; an invalid table leaves the active table untouched.
func (h *BreakpointsHandler) ReplaceBreakpoints(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceBreakpointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if len(req.Ranges) == 0 {
		response.BadRequest(w, r, "ranges must not be empty", []models.FieldError{
			{Field: "ranges", Message: "at least one range is required", Code: "required"},
		})
		return
	}

	if err := h.bps.Replace(r.Context(), req.DomainRanges()); err != nil {
		if errors.Is(err, aqi.ErrInvalidTable) {
			response.BadRequest(w, r, err.Error(), []models.FieldError{
				{Field: "ranges", Message: "breakpoint table failed validation", Code: "invalid_table"},
			})
			return
		}
		response.InternalError(w, r, "failed to store breakpoint table")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewBreakpointsResponse(h.bps.Table(r.Context())))
}

// InvalidateCache handles POST /v1/admin/breakpoints/invalidate - drop the
// cached table so the next read reloads from storage.
func (h *BreakpointsHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.bps.InvalidateCache()
	response.NoContent(w, r)
}
