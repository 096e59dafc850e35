package models

// SquareOfNineRow holds support/resistance levels for one square-of-nine angle.
type SquareOfNineRow struct {
	Angle       string  `json:"angle"`
	Resistance1 float64 `json:"resistance_1"`
	Resistance2 float64 `json:"resistance_2"`
	Support1    float64 `json:"support_1"`
	Support2    float64 `json:"support_2"`
}

// HarmonicLevel is one musical-ratio support/resistance layer.
type HarmonicLevel struct {
	Layer      int     `json:"layer"`
	Interval   string  `json:"interval"`
	Ratio      float64 `json:"ratio"`
	Resistance float64 `json:"resistance"`
	Support    float64 `json:"support"`
}

// PercentageLevel is one retracement/bounce level derived from a pivot, or a
// discount level derived from the current price.
type PercentageLevel struct {
	Source string  `json:"source"`
	Method string  `json:"method"`
	Level  float64 `json:"level"`
}

// LevelsReport bundles the three level tables computed for a single price.
type LevelsReport struct {
	Price            float64           `json:"price"`
	SquareOfNine     []SquareOfNineRow `json:"square_of_nine"`
	HarmonicLevels   []HarmonicLevel   `json:"harmonic_levels"`
	PercentageLevels []PercentageLevel `json:"percentage_levels"`
}
