package gann

import (
	"testing"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCatalogDedupByPriority(t *testing.T) {
	specs := Catalog()

	want := len(standardCycles) + len(squareCycles) + len(fibonacciCycles) - 3 // 144 twice, 225 once
	if len(specs) != want {
		t.Fatalf("expected %d unique cycles, got %d", want, len(specs))
	}

	byDays := map[int]models.CycleCategory{}
	for _, s := range specs {
		if _, dup := byDays[s.Days]; dup {
			t.Fatalf("duplicate day count %d in catalog", s.Days)
		}
		byDays[s.Days] = s.Category
	}
	// shared day counts resolve to the standard table
	if byDays[144] != models.CycleStandard {
		t.Fatalf("144 should be standard, got %s", byDays[144])
	}
	if byDays[225] != models.CycleStandard {
		t.Fatalf("225 should be standard, got %s", byDays[225])
	}
	if byDays[49] != models.CycleSquare || byDays[21] != models.CycleFibonacci {
		t.Fatalf("unexpected categories: 49=%s 21=%s", byDays[49], byDays[21])
	}
}

func TestProjectExactDates(t *testing.T) {
	pivot := models.Pivot{Date: date(2025, 6, 1), Type: models.PivotHigh, Price: 100000}
	today := date(2025, 6, 1)
	end := date(2026, 6, 1)

	projections, err := Project([]models.Pivot{pivot}, today, end)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	got := map[int]time.Time{}
	for _, p := range projections {
		got[p.Days] = p.Date
	}
	cases := map[int]time.Time{
		90:  date(2025, 8, 30),
		144: date(2025, 10, 23),
		233: date(2026, 1, 20),
	}
	for days, want := range cases {
		if !got[days].Equal(want) {
			t.Fatalf("+%dd: expected %s got %s", days, want.Format(models.DateOnly), got[days].Format(models.DateOnly))
		}
	}
}

func TestProjectWindowInclusive(t *testing.T) {
	pivot := models.Pivot{Date: date(2025, 1, 1), Type: models.PivotLow, Price: 50000}
	today := date(2025, 1, 31) // exactly pivot+30
	end := date(2025, 3, 2)    // exactly pivot+60

	projections, err := Project([]models.Pivot{pivot}, today, end)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	days := map[int]bool{}
	for _, p := range projections {
		if p.Date.Before(today) || p.Date.After(end) {
			t.Fatalf("projection %s outside window", p.Date.Format(models.DateOnly))
		}
		days[p.Days] = true
	}
	for _, d := range []int{30, 34, 45, 49, 55, 60} {
		if !days[d] {
			t.Fatalf("expected +%dd in window, got %v", d, days)
		}
	}
	if len(days) != 6 {
		t.Fatalf("expected 6 cycles in window, got %d", len(days))
	}
}

func TestProjectSortedAscending(t *testing.T) {
	pivots := []models.Pivot{
		{Date: date(2024, 11, 10), Type: models.PivotHigh, Price: 93000},
		{Date: date(2024, 1, 23), Type: models.PivotLow, Price: 38500},
	}
	projections, err := Project(pivots, date(2025, 1, 1), date(2026, 1, 1))
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	for i := 1; i < len(projections); i++ {
		if projections[i].Date.Before(projections[i-1].Date) {
			t.Fatalf("projections not sorted at %d", i)
		}
	}
}

func TestProjectEmptyPivots(t *testing.T) {
	projections, err := Project(nil, date(2025, 1, 1), date(2025, 12, 31))
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(projections) != 0 {
		t.Fatalf("expected no projections, got %d", len(projections))
	}
}

func TestProjectRejectsInvertedWindow(t *testing.T) {
	_, err := Project(nil, date(2025, 6, 1), date(2025, 5, 1))
	if err == nil {
		t.Fatalf("expected error for end before today")
	}
}

func TestProjectRejectsUnknownPivotType(t *testing.T) {
	pivots := []models.Pivot{{Date: date(2025, 1, 1), Type: "peak", Price: 1}}
	_, err := Project(pivots, date(2025, 1, 1), date(2025, 12, 31))
	if err == nil {
		t.Fatalf("expected error for unknown pivot type")
	}
}
