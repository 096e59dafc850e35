package levels

import (
	"math"
	"testing"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

func TestSquareOfNineReference(t *testing.T) {
	rows := SquareOfNine(95000)
	if len(rows) != 5 {
		t.Fatalf("expected 5 angles, got %d", len(rows))
	}

	r45 := rows[0]
	if r45.Angle != "45°" {
		t.Fatalf("expected first row 45°, got %s", r45.Angle)
	}
	if r45.Resistance1 != 95154 {
		t.Fatalf("45° resistance_1: expected 95154, got %.0f", r45.Resistance1)
	}
	wantS1 := math.Round(math.Pow(math.Sqrt(95000)-0.25, 2))
	if r45.Support1 != wantS1 {
		t.Fatalf("45° support_1: expected %.0f, got %.0f", wantS1, r45.Support1)
	}
	if math.Abs(r45.Support1-94847) > 2 {
		t.Fatalf("45° support_1 far from reference: %.0f", r45.Support1)
	}
	if r45.Resistance2 <= r45.Resistance1 || r45.Support2 >= r45.Support1 {
		t.Fatalf("level ordering violated: %+v", r45)
	}
}

func TestHarmonicSemitoneLayer(t *testing.T) {
	out := Harmonic(95000, 4)
	if len(out) != 4 {
		t.Fatalf("expected 4 layers, got %d", len(out))
	}

	l1 := out[0]
	if l1.Interval != "semitone" {
		t.Fatalf("expected semitone interval, got %s", l1.Interval)
	}
	if l1.Ratio != 1.05946 {
		t.Fatalf("expected ratio 1.05946, got %v", l1.Ratio)
	}
	if want := math.Round(95000 * Semitone); l1.Resistance != want {
		t.Fatalf("resistance: expected %.0f got %.0f", want, l1.Resistance)
	}
	if want := math.Round(95000 / Semitone); l1.Support != want {
		t.Fatalf("support: expected %.0f got %.0f", want, l1.Support)
	}
	if out[3].Interval != "major third" {
		t.Fatalf("expected major third at layer 4, got %s", out[3].Interval)
	}
}

func TestPercentageLevels(t *testing.T) {
	pivots := []models.Pivot{
		{Date: time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC), Type: models.PivotHigh, Price: 93000},
		{Date: time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC), Type: models.PivotLow, Price: 38500},
	}
	out := Percentage(pivots, 67000)

	// 5 per pivot plus the two current-price discounts
	if len(out) != 12 {
		t.Fatalf("expected 12 levels, got %d", len(out))
	}
	if out[0].Level != math.Round(93000*0.92) {
		t.Fatalf("first retracement: got %.0f", out[0].Level)
	}
	if out[5].Level != math.Round(38500*1.08) {
		t.Fatalf("first bounce: got %.0f", out[5].Level)
	}
	if out[10].Level != math.Round(67000/1.08) {
		t.Fatalf("8%% discount: got %.0f", out[10].Level)
	}
	if out[11].Level != math.Round(67000/Semitone) {
		t.Fatalf("semitone discount: got %.0f", out[11].Level)
	}
}
