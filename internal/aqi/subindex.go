package aqi

// SubIndexValue computes the sub-index for a single pollutant concentration
// via breakpoint linear interpolation. The boolean result reports whether
// the concentration fell outside the configured breakpoints and was clamped:
// below the first range it clamps to the first IndexLow (a very clean
// reading is still a legitimate reading), above the last range it clamps to
// the last IndexHigh. Returns ErrUnknownPollutant when the table has no
// ranges for the pollutant.
//
// Everything stays in float64; rounding is a presentation concern.
func (t *Table) SubIndexValue(p Pollutant, conc float64) (float64, bool, error) {
	rs, err := t.RangesFor(p)
	if err != nil {
		return 0, false, err
	}

	first, last := rs[0], rs[len(rs)-1]
	if conc < first.ConcLow {
		return first.IndexLow, true, nil
	}
	if conc > last.ConcHigh {
		return last.IndexHigh, true, nil
	}

	for i, r := range rs {
		// Half-open ranges, except the last which owns its upper bound.
		if conc < r.ConcHigh || (i == len(rs)-1 && conc <= r.ConcHigh) {
			return interpolate(r, conc), false, nil
		}
	}

	// Unreachable given the bounds checks above.
	return last.IndexHigh, true, nil
}

// interpolate maps conc into r's index interval. A zero-width range is
// degenerate and yields IndexLow directly.
func interpolate(r BreakpointRange, conc float64) float64 {
	width := r.ConcHigh - r.ConcLow
	if width == 0 {
		return r.IndexLow
	}
	return r.IndexLow + (r.IndexHigh-r.IndexLow)/width*(conc-r.ConcLow)
}
