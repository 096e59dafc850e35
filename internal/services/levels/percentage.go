package levels

import (
	"fmt"
	"math"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

var percentages = []float64{0.08, 0.125, 0.25, 0.333, 0.50}

// Percentage computes retracement levels below each high pivot and bounce
// levels above each low pivot, plus two discount levels anchored on the
// current price (8% and one semitone).
func Percentage(pivots []models.Pivot, currentPrice float64) []models.PercentageLevel {
	var out []models.PercentageLevel

	for _, p := range pivots {
		label := p.Label()
		switch p.Type {
		case models.PivotHigh:
			for _, pct := range percentages {
				out = append(out, models.PercentageLevel{
					Source: label,
					Method: fmt.Sprintf("retracement %.1f%%", pct*100),
					Level:  math.Round(p.Price * (1 - pct)),
				})
			}
		case models.PivotLow:
			for _, pct := range percentages {
				out = append(out, models.PercentageLevel{
					Source: label,
					Method: fmt.Sprintf("bounce %.1f%%", pct*100),
					Level:  math.Round(p.Price * (1 + pct)),
				})
			}
		}
	}

	current := fmt.Sprintf("current price $%.0f", currentPrice)
	out = append(out,
		models.PercentageLevel{
			Source: current,
			Method: "/ 1.08 (8% discount)",
			Level:  math.Round(currentPrice / 1.08),
		},
		models.PercentageLevel{
			Source: current,
			Method: fmt.Sprintf("/ %.4f (semitone discount)", Semitone),
			Level:  math.Round(currentPrice / Semitone),
		},
	)
	return out
}
