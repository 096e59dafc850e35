package models

import "time"

// Bar represents one daily OHLC candle of the analyzed series.
type Bar struct {
	Symbol string    `json:"symbol,omitempty"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
}

// DateOnly is the wire format for calendar dates.
const DateOnly = "2006-01-02"
