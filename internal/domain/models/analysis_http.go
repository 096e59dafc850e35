package models

// Requests for the analysis HTTP endpoints. Defined in domain for consistency and reuse.

// AnalysisRequest runs auto-mode analysis: history is fetched, pivots are detected.
type AnalysisRequest struct {
	Symbol      string  `query:"symbol" json:"symbol" default:"BTCUSDT"`
	Range       int     `query:"range" json:"range" default:"360" validate:"gte=1,lte=3650"`
	Lookback    int     `query:"lookback" json:"lookback" default:"14" validate:"gte=1,lte=120"`
	MinChange   float64 `query:"min_change" json:"min_change" default:"10" validate:"gte=0"`
	HistoryDays int     `query:"history_days" json:"history_days" default:"730" validate:"gte=1,lte=3650"`
	Today       string  `query:"today" json:"today"`
}

// ManualPivot is a caller-supplied pivot entry. Entries that fail to parse
// are skipped with a warning; an unknown type is a hard validation error.
type ManualPivot struct {
	Date  string  `json:"date" validate:"required"`
	Type  string  `json:"type" validate:"required"`
	Price float64 `json:"price" validate:"gt=0"`
}

// ManualAnalysisRequest runs analysis against caller-supplied pivots.
type ManualAnalysisRequest struct {
	Pivots       []ManualPivot `json:"pivots" validate:"required,min=1,dive"`
	CurrentPrice float64       `json:"current_price" validate:"required,gt=0"`
	Range        int           `json:"range" default:"360" validate:"gte=1,lte=3650"`
	Today        string        `json:"today"`
}

// PivotsRequest detects pivots only, without the projection stages.
type PivotsRequest struct {
	Symbol      string  `query:"symbol" json:"symbol" default:"BTCUSDT"`
	Lookback    int     `query:"lookback" json:"lookback" default:"14" validate:"gte=1,lte=120"`
	MinChange   float64 `query:"min_change" json:"min_change" default:"10" validate:"gte=0"`
	HistoryDays int     `query:"history_days" json:"history_days" default:"730" validate:"gte=1,lte=3650"`
}

// LevelsRequest computes the three price-level tables for a given price.
type LevelsRequest struct {
	Price  float64 `query:"price" json:"price" validate:"required,gt=0"`
	Layers int     `query:"layers" json:"layers" default:"4" validate:"gte=1,lte=12"`
}

// SeasonalRequest lists seasonal anchor dates inside a window.
type SeasonalRequest struct {
	From string `query:"from" json:"from"`
	To   string `query:"to" json:"to"`
}
