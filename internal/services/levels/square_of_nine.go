package levels

import (
	"math"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

// sq9Angle maps a square-of-nine rotation angle to its square-root increment.
type sq9Angle struct {
	label     string
	increment float64
}

var sq9Angles = []sq9Angle{
	{"45°", 0.25},
	{"90°", 0.50},
	{"180°", 1.00},
	{"270°", 1.50},
	{"360°", 2.00},
}

// SquareOfNine computes support/resistance levels by stepping the square
// root of the price by each angle's increment and squaring back. Levels are
// rounded to the nearest integer price.
func SquareOfNine(price float64) []models.SquareOfNineRow {
	sqrt := math.Sqrt(price)
	rows := make([]models.SquareOfNineRow, 0, len(sq9Angles))
	for _, a := range sq9Angles {
		rows = append(rows, models.SquareOfNineRow{
			Angle:       a.label,
			Resistance1: math.Round(math.Pow(sqrt+a.increment, 2)),
			Resistance2: math.Round(math.Pow(sqrt+2*a.increment, 2)),
			Support1:    math.Round(math.Pow(sqrt-a.increment, 2)),
			Support2:    math.Round(math.Pow(sqrt-2*a.increment, 2)),
		})
	}
	return rows
}
