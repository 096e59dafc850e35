package levels

import "github.com/ericakcc/gann-btc-predictor/internal/domain/models"

// Calculator bundles the three level formulas behind the domain interface.
// It is stateless.
type Calculator struct{}

func NewCalculator() *Calculator { return &Calculator{} }

func (Calculator) SquareOfNine(price float64) []models.SquareOfNineRow { return SquareOfNine(price) }

func (Calculator) Harmonic(price float64, layers int) []models.HarmonicLevel {
	return Harmonic(price, layers)
}

func (Calculator) Percentage(pivots []models.Pivot, currentPrice float64) []models.PercentageLevel {
	return Percentage(pivots, currentPrice)
}
