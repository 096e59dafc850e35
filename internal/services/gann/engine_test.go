package gann

import (
	"testing"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

func TestNewEngineFillsDefaults(t *testing.T) {
	e := NewEngine(Params{})
	p := e.Params()
	if p.Lookback != DefaultLookback || p.MinChangePct != DefaultMinChangePct {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if p.ClusterTolerance != 3 || p.SeasonalTolerance != 5 || p.MaxGroups != 15 {
		t.Fatalf("unexpected tolerances: %+v", p)
	}
}

func TestEngineConfluencesPipeline(t *testing.T) {
	e := NewEngine(Params{})
	pivots := []models.Pivot{
		{Date: date(2024, 11, 10), Type: models.PivotHigh, Price: 93000},
		{Date: date(2024, 1, 23), Type: models.PivotLow, Price: 38500},
	}
	today := date(2025, 1, 1)
	end := date(2025, 12, 27)

	projections, groups, seasonal, err := e.Confluences(pivots, today, end)
	if err != nil {
		t.Fatalf("confluences: %v", err)
	}
	if len(projections) == 0 {
		t.Fatalf("expected projections in a 360-day window")
	}
	for _, g := range groups {
		if g.Score < 2 {
			t.Fatalf("group with score %d slipped through", g.Score)
		}
		if len(g.Members) == 0 || len(g.Contributions) != len(g.Members) {
			t.Fatalf("inconsistent group %+v", g)
		}
	}
	if len(groups) > DefaultMaxGroups {
		t.Fatalf("more than %d groups returned", DefaultMaxGroups)
	}
	if len(seasonal) == 0 {
		t.Fatalf("expected seasonal dates inside window")
	}
}

func TestEngineConfluencesEmptyPivots(t *testing.T) {
	e := NewEngine(Params{})
	projections, groups, _, err := e.Confluences(nil, date(2025, 1, 1), date(2025, 12, 27))
	if err != nil {
		t.Fatalf("confluences: %v", err)
	}
	if len(projections) != 0 || len(groups) != 0 {
		t.Fatalf("expected empty outputs for empty pivots")
	}
}
