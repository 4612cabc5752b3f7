package aqi

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// BreakpointRange maps a concentration interval to a sub-index interval for
// one pollutant. Ranges for a pollutant must be contiguous, non-overlapping,
// and ascending; the final range's ConcHigh is the sentinel maximum;
// concentrations above it clamp to its IndexHigh.
type BreakpointRange struct {
	Pollutant Pollutant `json:"pollutant"`
	ConcLow   float64   `json:"concLow"`
	ConcHigh  float64   `json:"concHigh"`
	IndexLow  float64   `json:"indexLow"`
	IndexHigh float64   `json:"indexHigh"`
}

// Table is an immutable, validated breakpoint table. It is loaded once
// before scoring starts and is safe for unrestricted concurrent reads.
type Table struct {
	order  []Pollutant
	ranges map[Pollutant][]BreakpointRange
}

// NewTable validates the given ranges and builds a Table. Pollutant order
// in the table follows first appearance in the input; this declaration
// order is the canonical order used for dominant-pollutant tie-breaking.
func NewTable(ranges []BreakpointRange) (*Table, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: no ranges configured", ErrInvalidTable)
	}

	t := &Table{ranges: make(map[Pollutant][]BreakpointRange)}
	for _, r := range ranges {
		if r.Pollutant == "" {
			return nil, fmt.Errorf("%w: range with empty pollutant", ErrInvalidTable)
		}
		if _, seen := t.ranges[r.Pollutant]; !seen {
			t.order = append(t.order, r.Pollutant)
		}
		t.ranges[r.Pollutant] = append(t.ranges[r.Pollutant], r)
	}

	for _, p := range t.order {
		rs := t.ranges[p]
		sort.Slice(rs, func(i, j int) bool { return rs[i].ConcLow < rs[j].ConcLow })

		for i, r := range rs {
			if r.ConcHigh < r.ConcLow {
				return nil, fmt.Errorf("%w: %s range [%g, %g] is inverted", ErrInvalidTable, p, r.ConcLow, r.ConcHigh)
			}
			if r.IndexHigh < r.IndexLow {
				return nil, fmt.Errorf("%w: %s index range [%g, %g] is inverted", ErrInvalidTable, p, r.IndexLow, r.IndexHigh)
			}
			if i == 0 {
				continue
			}
			if rs[i-1].ConcHigh != r.ConcLow {
				return nil, fmt.Errorf("%w: %s ranges not contiguous at %g (previous ends at %g)",
					ErrInvalidTable, p, r.ConcLow, rs[i-1].ConcHigh)
			}
		}
		t.ranges[p] = rs
	}

	return t, nil
}

// LoadTable reads a declarative JSON range list and builds a validated
// Table. This is the swap point for alternative national standards.
func LoadTable(r io.Reader) (*Table, error) {
	var ranges []BreakpointRange
	if err := json.NewDecoder(r).Decode(&ranges); err != nil {
		return nil, fmt.Errorf("decode breakpoint table: %w", err)
	}
	return NewTable(ranges)
}

// RangesFor returns the ordered breakpoint ranges for a pollutant.
func (t *Table) RangesFor(p Pollutant) ([]BreakpointRange, error) {
	rs, ok := t.ranges[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPollutant, p)
	}
	return rs, nil
}

// Pollutants returns the canonical pollutant order of the table.
func (t *Table) Pollutants() []Pollutant {
	out := make([]Pollutant, len(t.order))
	copy(out, t.order)
	return out
}

// Contains reports whether the table has ranges for the pollutant.
func (t *Table) Contains(p Pollutant) bool {
	_, ok := t.ranges[p]
	return ok
}

// Ranges returns all ranges in canonical pollutant order, suitable for
// serialization back to the declarative form.
func (t *Table) Ranges() []BreakpointRange {
	var out []BreakpointRange
	for _, p := range t.order {
		out = append(out, t.ranges[p]...)
	}
	return out
}
