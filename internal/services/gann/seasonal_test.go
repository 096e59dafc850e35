package gann

import (
	"testing"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

func TestSeasonalDatesWindowed(t *testing.T) {
	dates := SeasonalDates(date(2025, 6, 1), date(2025, 12, 31))

	want := []string{"summer solstice", "summer-autumn midpoint", "autumn equinox", "autumn-winter midpoint", "winter solstice"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d seasonal dates, got %d: %+v", len(want), len(dates), dates)
	}
	for i, w := range want {
		if dates[i].Event != w {
			t.Fatalf("position %d: expected %q got %q", i, w, dates[i].Event)
		}
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].Date.Before(dates[i-1].Date) {
			t.Fatalf("seasonal dates not sorted")
		}
	}
}

func TestSeasonalDatesSpanYears(t *testing.T) {
	dates := SeasonalDates(date(2025, 12, 1), date(2026, 2, 28))
	want := []string{"winter solstice", "winter-spring midpoint"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates across year boundary, got %d", len(want), len(dates))
	}
	if dates[0].Date.Year() != 2025 || dates[1].Date.Year() != 2026 {
		t.Fatalf("unexpected years: %v", dates)
	}
}

func TestEnhanceFirstMatch(t *testing.T) {
	groups := []models.ConfluenceGroup{
		{Date: date(2025, 6, 19), Score: 3, Signal: models.SignalMedium},
		{Date: date(2025, 10, 15), Score: 2, Signal: models.SignalWeak},
	}
	seasonal := []models.SeasonalDate{
		{Date: date(2025, 6, 21), Event: "summer solstice"},
		{Date: date(2025, 6, 23), Event: "closer but later"},
	}

	got := Enhance(groups, seasonal, 5)
	if got[0].Seasonal != "summer solstice (2025-06-21)" {
		t.Fatalf("expected first seasonal match, got %q", got[0].Seasonal)
	}
	if got[1].Seasonal != "" {
		t.Fatalf("expected no tag outside tolerance, got %q", got[1].Seasonal)
	}
}

func TestEnhanceEmptyInputs(t *testing.T) {
	if got := Enhance(nil, nil, 5); len(got) != 0 {
		t.Fatalf("expected empty result")
	}
	groups := []models.ConfluenceGroup{{Date: date(2025, 6, 19)}}
	got := Enhance(groups, nil, 5)
	if got[0].Seasonal != "" {
		t.Fatalf("expected empty tag with no seasonal dates")
	}
}
