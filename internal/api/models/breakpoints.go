package models

import "github.com/airscore/airscore/internal/aqi"

// BreakpointRange mirrors one configured breakpoint range.
type BreakpointRange struct {
	Pollutant string  `json:"pollutant"`
	ConcLow   float64 `json:"concLow"`
	ConcHigh  float64 `json:"concHigh"`
	IndexLow  float64 `json:"indexLow"`
	IndexHigh float64 `json:"indexHigh"`
}

// BreakpointsResponse lists the active breakpoint table. Pollutants holds
// the table's canonical pollutant order, which doubles as the
// dominant-pollutant tie-break order.
type BreakpointsResponse struct {
	Pollutants []string          `json:"pollutants"`
	Ranges     []BreakpointRange `json:"ranges"`
}

// ReplaceBreakpointsRequest is the admin request body for replacing the
// configured breakpoint table.
type ReplaceBreakpointsRequest struct {
	Ranges []BreakpointRange `json:"ranges"`
}

// DomainRanges converts the request ranges to their domain representation.
func (r ReplaceBreakpointsRequest) DomainRanges() []aqi.BreakpointRange {
	out := make([]aqi.BreakpointRange, 0, len(r.Ranges))
	for _, br := range r.Ranges {
		out = append(out, aqi.BreakpointRange{
			Pollutant: aqi.Pollutant(br.Pollutant),
			ConcLow:   br.ConcLow,
			ConcHigh:  br.ConcHigh,
			IndexLow:  br.IndexLow,
			IndexHigh: br.IndexHigh,
		})
	}
	return out
}

// NewBreakpointsResponse converts a validated table to its API
// representation.
func NewBreakpointsResponse(t *aqi.Table) BreakpointsResponse {
	pollutants := t.Pollutants()
	ranges := t.Ranges()

	resp := BreakpointsResponse{
		Pollutants: make([]string, 0, len(pollutants)),
		Ranges:     make([]BreakpointRange, 0, len(ranges)),
	}
	for _, p := range pollutants {
		resp.Pollutants = append(resp.Pollutants, string(p))
	}
	for _, r := range ranges {
		resp.Ranges = append(resp.Ranges, BreakpointRange{
			Pollutant: string(r.Pollutant),
			ConcLow:   r.ConcLow,
			ConcHigh:  r.ConcHigh,
			IndexLow:  r.IndexLow,
			IndexHigh: r.IndexHigh,
		})
	}
	return resp
}
