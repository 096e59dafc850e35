package models

import "time"

// AnalysisReport is the full result of one analysis run. It is what the
// HTTP API returns and what gets published for downstream consumers.
type AnalysisReport struct {
	Symbol           string            `json:"symbol,omitempty"`
	AnalysisDate     time.Time         `json:"analysis_date"`
	EndDate          time.Time         `json:"end_date"`
	CurrentPrice     float64           `json:"current_price"`
	Pivots           []Pivot           `json:"pivots"`
	Projections      []Projection      `json:"projections"`
	Confluences      []ConfluenceGroup `json:"confluences"`
	SeasonalDates    []SeasonalDate    `json:"seasonal_dates"`
	SquareOfNine     []SquareOfNineRow `json:"square_of_nine"`
	HarmonicLevels   []HarmonicLevel   `json:"harmonic_levels"`
	PercentageLevels []PercentageLevel `json:"percentage_levels"`
}
