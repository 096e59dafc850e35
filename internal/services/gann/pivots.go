package gann

import "github.com/ericakcc/gann-btc-predictor/internal/domain/models"

// DetectPivots extracts significant local highs/lows from a bar series.
// bars must be sorted ascending by date. With fewer than 2*lookback+1 bars
// there is nothing to compare against, so the result is empty.
//
// Extremum checks are strict: a bar whose high equals another high inside
// the window yields no pivot, so a plateau of equal highs produces nothing.
func DetectPivots(bars []models.Bar, lookback int, minChangePct float64) []models.Pivot {
	n := len(bars)
	if n < 2*lookback+1 {
		return nil
	}

	var raw []models.Pivot
	for i := lookback; i < n-lookback; i++ {
		if isStrictHigh(bars, i, lookback) {
			raw = append(raw, models.Pivot{Date: bars[i].Date, Type: models.PivotHigh, Price: bars[i].High})
		} else if isStrictLow(bars, i, lookback) {
			raw = append(raw, models.Pivot{Date: bars[i].Date, Type: models.PivotLow, Price: bars[i].Low})
		}
	}
	if len(raw) == 0 {
		return nil
	}

	return filterSignificant(raw, minChangePct)
}

func isStrictHigh(bars []models.Bar, i, lookback int) bool {
	for j := i - lookback; j <= i+lookback; j++ {
		if j == i {
			continue
		}
		if bars[i].High <= bars[j].High {
			return false
		}
	}
	return true
}

func isStrictLow(bars []models.Bar, i, lookback int) bool {
	for j := i - lookback; j <= i+lookback; j++ {
		if j == i {
			continue
		}
		if bars[i].Low >= bars[j].Low {
			return false
		}
	}
	return true
}

// filterSignificant keeps the first raw pivot unconditionally and then walks
// forward: a same-type candidate replaces the last kept pivot when it is more
// extreme; an opposite-type candidate is appended only when its price change
// from the last kept pivot reaches minChangePct, otherwise it is dropped for
// good. The result alternates types.
func filterSignificant(raw []models.Pivot, minChangePct float64) []models.Pivot {
	filtered := []models.Pivot{raw[0]}

	for _, p := range raw[1:] {
		last := &filtered[len(filtered)-1]

		if p.Type == last.Type {
			if p.Type == models.PivotHigh && p.Price > last.Price {
				*last = p
			} else if p.Type == models.PivotLow && p.Price < last.Price {
				*last = p
			}
			continue
		}

		changePct := 0.0
		if last.Price != 0 {
			changePct = abs(p.Price-last.Price) / last.Price * 100
		}
		if changePct >= minChangePct {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
