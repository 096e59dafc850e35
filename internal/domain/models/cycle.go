package models

import "time"

// CycleCategory groups day-count cycles by their origin table.
type CycleCategory string

const (
	CycleStandard  CycleCategory = "standard"
	CycleSquare    CycleCategory = "square"
	CycleFibonacci CycleCategory = "fibonacci"
)

// CycleSpec is one entry of the deduplicated cycle catalog.
type CycleSpec struct {
	Days     int           `json:"days"`
	Category CycleCategory `json:"category"`
}

// Projection is a single (pivot, cycle) candidate turning-point date.
type Projection struct {
	Date     time.Time     `json:"date"`
	Source   string        `json:"source"`
	Days     int           `json:"days"`
	Category CycleCategory `json:"category"`
}
