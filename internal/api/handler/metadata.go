package handler

import (
	"net/http"

	"github.com/airscore/airscore/internal/api/models"
	"github.com/airscore/airscore/internal/api/response"
	"github.com/airscore/airscore/internal/aqi"
	"github.com/airscore/airscore/internal/breakpoints"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	bps *breakpoints.Service
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(bps *breakpoints.Service) *MetadataHandler {
	return &MetadataHandler{bps: bps}
}

// GetBreakpoints handles GET /v1/metadata/breakpoints - the active table.
func (h *MetadataHandler) GetBreakpoints(w http.ResponseWriter, r *http.Request) {
	table := h.bps.Table(r.Context())
	response.JSON(w, r, http.StatusOK, models.NewBreakpointsResponse(table))
}

// GetEnums handles GET /v1/metadata/enums - pollutants and severity bands.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	table := h.bps.Table(r.Context())

	pollutants := table.Pollutants()
	enums := models.Enums{
		Pollutants: make([]string, 0, len(pollutants)),
		Categories: categoryBands(),
	}
	for _, p := range pollutants {
		enums.Pollutants = append(enums.Pollutants, string(p))
	}

	response.JSON(w, r, http.StatusOK, enums)
}

func categoryBands() []models.CategoryBand {
	high := func(v float64) *float64 { return &v }
	return []models.CategoryBand{
		{Category: string(aqi.CategoryGood), Low: 0, High: high(50)},
		{Category: string(aqi.CategorySatisfactory), Low: 50, High: high(100)},
		{Category: string(aqi.CategoryModerate), Low: 100, High: high(200)},
		{Category: string(aqi.CategoryPoor), Low: 200, High: high(300)},
		{Category: string(aqi.CategoryVeryPoor), Low: 300, High: high(400)},
		{Category: string(aqi.CategorySevere), Low: 400},
	}
}
