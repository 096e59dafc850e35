package gann

import (
	"testing"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// makeBars builds a flat series where high == low == close == vals[i].
func makeBars(vals []float64) []models.Bar {
	bars := make([]models.Bar, len(vals))
	for i, v := range vals {
		bars[i] = models.Bar{Date: day(i), Open: v, High: v, Low: v, Close: v}
	}
	return bars
}

func TestDetectPivotsTooFewBars(t *testing.T) {
	bars := makeBars([]float64{1, 2, 3, 4})
	if got := DetectPivots(bars, 2, 0); got != nil {
		t.Fatalf("expected nil for %d bars with lookback 2, got %d pivots", len(bars), len(got))
	}
}

func TestDetectPivotsFindsExtremes(t *testing.T) {
	// one clear peak and one clear trough, large enough swings to pass the filter
	bars := makeBars([]float64{100, 110, 150, 110, 100, 90, 60, 90, 100})
	pivots := DetectPivots(bars, 2, 10)

	if len(pivots) != 2 {
		t.Fatalf("expected 2 pivots, got %d: %+v", len(pivots), pivots)
	}
	if pivots[0].Type != models.PivotHigh || pivots[0].Price != 150 {
		t.Fatalf("unexpected first pivot %+v", pivots[0])
	}
	if pivots[1].Type != models.PivotLow || pivots[1].Price != 60 {
		t.Fatalf("unexpected second pivot %+v", pivots[1])
	}
}

func TestDetectPivotsStrictTieYieldsNothing(t *testing.T) {
	// plateau: two equal maxima inside each other's window, neither is strict
	bars := makeBars([]float64{1, 2, 5, 5, 2, 1, 2})
	pivots := DetectPivots(bars, 2, 0)
	for _, p := range pivots {
		if p.Type == models.PivotHigh && p.Price == 5 {
			t.Fatalf("plateau must not produce a high pivot: %+v", p)
		}
	}
}

func TestFilterKeepsMoreExtremeSameType(t *testing.T) {
	raw := []models.Pivot{
		{Date: day(0), Type: models.PivotHigh, Price: 100},
		{Date: day(10), Type: models.PivotHigh, Price: 120},
		{Date: day(20), Type: models.PivotLow, Price: 60},
	}
	got := filterSignificant(raw, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 pivots, got %d", len(got))
	}
	if got[0].Price != 120 {
		t.Fatalf("expected higher high to replace, got %+v", got[0])
	}
	if got[1].Type != models.PivotLow {
		t.Fatalf("expected low second, got %+v", got[1])
	}
}

func TestFilterDropsInsignificantOppositeType(t *testing.T) {
	raw := []models.Pivot{
		{Date: day(0), Type: models.PivotHigh, Price: 100},
		{Date: day(10), Type: models.PivotLow, Price: 95}, // 5% move, below threshold
		{Date: day(20), Type: models.PivotLow, Price: 50}, // significant, but no prior low kept
	}
	got := filterSignificant(raw, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 pivots, got %d: %+v", len(got), got)
	}
	// the 95 low is dropped, the 50 low then passes the threshold check
	if got[1].Price != 50 {
		t.Fatalf("expected the 50 low kept, got %+v", got[1])
	}
}

func TestDetectPivotsAlternatesTypes(t *testing.T) {
	bars := makeBars([]float64{
		100, 120, 180, 120, 100, 80, 50, 80, 100, 130, 200, 130, 100, 70, 40, 70, 100,
	})
	pivots := DetectPivots(bars, 2, 10)
	if len(pivots) < 2 {
		t.Fatalf("expected multiple pivots, got %d", len(pivots))
	}
	for i := 1; i < len(pivots); i++ {
		if pivots[i].Type == pivots[i-1].Type {
			t.Fatalf("adjacent pivots share type at %d: %+v", i, pivots)
		}
	}
}
