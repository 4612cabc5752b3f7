package models

// CategoryBand describes one severity category and its AQI band. A null
// upper bound means the band is open-ended.
type CategoryBand struct {
	Category string   `json:"category"`
	Low      float64  `json:"low"`
	High     *float64 `json:"high,omitempty"`
}

// Enums lists the enumerations the API uses, for client code generation
// and UI pickers.
type Enums struct {
	Pollutants []string       `json:"pollutants"`
	Categories []CategoryBand `json:"categories"`
}
