package aqi

// CPCBRanges returns the Indian CPCB National AQI breakpoint set.
// Concentrations are µg/m³ except CO (mg/m³). PM2.5, PM10, SO2, NO2 and
// NH3 use 24-hour averages; CO and O3 use 8-hour averages. The top range
// of each pollutant ends at the sentinel maximum, and anything above clamps
// to index 500.
func CPCBRanges() []BreakpointRange {
	return []BreakpointRange{
		{Pollutant: PollutantPM25, ConcLow: 0, ConcHigh: 30, IndexLow: 0, IndexHigh: 50},
		{Pollutant: PollutantPM25, ConcLow: 30, ConcHigh: 60, IndexLow: 50, IndexHigh: 100},
		{Pollutant: PollutantPM25, ConcLow: 60, ConcHigh: 90, IndexLow: 100, IndexHigh: 200},
		{Pollutant: PollutantPM25, ConcLow: 90, ConcHigh: 120, IndexLow: 200, IndexHigh: 300},
		{Pollutant: PollutantPM25, ConcLow: 120, ConcHigh: 250, IndexLow: 300, IndexHigh: 400},
		{Pollutant: PollutantPM25, ConcLow: 250, ConcHigh: 500, IndexLow: 400, IndexHigh: 500},

		{Pollutant: PollutantPM10, ConcLow: 0, ConcHigh: 50, IndexLow: 0, IndexHigh: 50},
		{Pollutant: PollutantPM10, ConcLow: 50, ConcHigh: 100, IndexLow: 50, IndexHigh: 100},
		{Pollutant: PollutantPM10, ConcLow: 100, ConcHigh: 250, IndexLow: 100, IndexHigh: 200},
		{Pollutant: PollutantPM10, ConcLow: 250, ConcHigh: 350, IndexLow: 200, IndexHigh: 300},
		{Pollutant: PollutantPM10, ConcLow: 350, ConcHigh: 430, IndexLow: 300, IndexHigh: 400},
		{Pollutant: PollutantPM10, ConcLow: 430, ConcHigh: 510, IndexLow: 400, IndexHigh: 500},

		{Pollutant: PollutantSO2, ConcLow: 0, ConcHigh: 40, IndexLow: 0, IndexHigh: 50},
		{Pollutant: PollutantSO2, ConcLow: 40, ConcHigh: 80, IndexLow: 50, IndexHigh: 100},
		{Pollutant: PollutantSO2, ConcLow: 80, ConcHigh: 380, IndexLow: 100, IndexHigh: 200},
		{Pollutant: PollutantSO2, ConcLow: 380, ConcHigh: 800, IndexLow: 200, IndexHigh: 300},
		{Pollutant: PollutantSO2, ConcLow: 800, ConcHigh: 1600, IndexLow: 300, IndexHigh: 400},
		{Pollutant: PollutantSO2, ConcLow: 1600, ConcHigh: 2400, IndexLow: 400, IndexHigh: 500},

		{Pollutant: PollutantNO2, ConcLow: 0, ConcHigh: 40, IndexLow: 0, IndexHigh: 50},
		{Pollutant: PollutantNO2, ConcLow: 40, ConcHigh: 80, IndexLow: 50, IndexHigh: 100},
		{Pollutant: PollutantNO2, ConcLow: 80, ConcHigh: 180, IndexLow: 100, IndexHigh: 200},
		{Pollutant: PollutantNO2, ConcLow: 180, ConcHigh: 280, IndexLow: 200, IndexHigh: 300},
		{Pollutant: PollutantNO2, ConcLow: 280, ConcHigh: 400, IndexLow: 300, IndexHigh: 400},
		{Pollutant: PollutantNO2, ConcLow: 400, ConcHigh: 520, IndexLow: 400, IndexHigh: 500},

		{Pollutant: PollutantCO, ConcLow: 0, ConcHigh: 1, IndexLow: 0, IndexHigh: 50},
		{Pollutant: PollutantCO, ConcLow: 1, ConcHigh: 2, IndexLow: 50, IndexHigh: 100},
		{Pollutant: PollutantCO, ConcLow: 2, ConcHigh: 10, IndexLow: 100, IndexHigh: 200},
		{Pollutant: PollutantCO, ConcLow: 10, ConcHigh: 17, IndexLow: 200, IndexHigh: 300},
		{Pollutant: PollutantCO, ConcLow: 17, ConcHigh: 34, IndexLow: 300, IndexHigh: 400},
		{Pollutant: PollutantCO, ConcLow: 34, ConcHigh: 51, IndexLow: 400, IndexHigh: 500},

		{Pollutant: PollutantO3, ConcLow: 0, ConcHigh: 50, IndexLow: 0, IndexHigh: 50},
		{Pollutant: PollutantO3, ConcLow: 50, ConcHigh: 100, IndexLow: 50, IndexHigh: 100},
		{Pollutant: PollutantO3, ConcLow: 100, ConcHigh: 168, IndexLow: 100, IndexHigh: 200},
		{Pollutant: PollutantO3, ConcLow: 168, ConcHigh: 208, IndexLow: 200, IndexHigh: 300},
		{Pollutant: PollutantO3, ConcLow: 208, ConcHigh: 748, IndexLow: 300, IndexHigh: 400},
		{Pollutant: PollutantO3, ConcLow: 748, ConcHigh: 1288, IndexLow: 400, IndexHigh: 500},

		{Pollutant: PollutantNH3, ConcLow: 0, ConcHigh: 200, IndexLow: 0, IndexHigh: 50},
		{Pollutant: PollutantNH3, ConcLow: 200, ConcHigh: 400, IndexLow: 50, IndexHigh: 100},
		{Pollutant: PollutantNH3, ConcLow: 400, ConcHigh: 800, IndexLow: 100, IndexHigh: 200},
		{Pollutant: PollutantNH3, ConcLow: 800, ConcHigh: 1200, IndexLow: 200, IndexHigh: 300},
		{Pollutant: PollutantNH3, ConcLow: 1200, ConcHigh: 1800, IndexLow: 300, IndexHigh: 400},
		{Pollutant: PollutantNH3, ConcLow: 1800, ConcHigh: 2400, IndexLow: 400, IndexHigh: 500},
	}
}

// DefaultTable builds the CPCB table. It panics on a validation error,
// which can only happen if the built-in ranges above are edited badly.
func DefaultTable() *Table {
	t, err := NewTable(CPCBRanges())
	if err != nil {
		panic(err)
	}
	return t
}
