package service

import (
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

// ConfluenceEngine runs the temporal confluence pipeline over a pivot list.
// Implementations are pure: no I/O, no state between calls.
type ConfluenceEngine interface {
	DetectPivots(bars []models.Bar) []models.Pivot
	Confluences(pivots []models.Pivot, today, endDate time.Time) ([]models.Projection, []models.ConfluenceGroup, []models.SeasonalDate, error)
}

// LevelCalculator produces the three price-level tables for a report.
type LevelCalculator interface {
	SquareOfNine(price float64) []models.SquareOfNineRow
	Harmonic(price float64, layers int) []models.HarmonicLevel
	Percentage(pivots []models.Pivot, currentPrice float64) []models.PercentageLevel
}
