package levels

import (
	"fmt"
	"math"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

// Semitone is the musical semitone ratio, 2^(1/12) ≈ 1.05946.
var Semitone = math.Pow(2, 1.0/12)

var intervalNames = map[int]string{
	1: "semitone",
	2: "whole tone",
	3: "minor third",
	4: "major third",
}

// Harmonic computes stacked musical-ratio support/resistance layers:
// layer n uses ratio Semitone^n, resistance = price*ratio, support =
// price/ratio, both rounded to the nearest integer.
func Harmonic(price float64, layers int) []models.HarmonicLevel {
	out := make([]models.HarmonicLevel, 0, layers)
	for n := 1; n <= layers; n++ {
		ratio := math.Pow(Semitone, float64(n))
		name, ok := intervalNames[n]
		if !ok {
			name = fmt.Sprintf("%d semitones", n)
		}
		out = append(out, models.HarmonicLevel{
			Layer:      n,
			Interval:   name,
			Ratio:      math.Round(ratio*1e5) / 1e5,
			Resistance: math.Round(price * ratio),
			Support:    math.Round(price / ratio),
		})
	}
	return out
}
