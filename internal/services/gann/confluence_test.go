package gann

import (
	"testing"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

func proj(d time.Time, source string, days int, cat models.CycleCategory) models.Projection {
	return models.Projection{Date: d, Source: source, Days: days, Category: cat}
}

func TestClusterFourContributions(t *testing.T) {
	projections := []models.Projection{
		proj(date(2026, 3, 1), "a", 90, models.CycleStandard),
		proj(date(2026, 3, 1), "b", 144, models.CycleStandard),
		proj(date(2026, 3, 4), "a", 49, models.CycleSquare),
		proj(date(2026, 3, 3), "c", 21, models.CycleFibonacci),
	}
	groups := Cluster(projections, 3, 15)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.Score != 4 {
		t.Fatalf("expected score 4, got %d", g.Score)
	}
	if g.Signal != models.SignalMedium {
		t.Fatalf("expected medium signal, got %s", g.Signal)
	}
	if !g.Date.Equal(date(2026, 3, 1)) {
		t.Fatalf("expected lower-median center 2026-03-01, got %s", g.Date.Format(models.DateOnly))
	}
	if len(g.Contributions) != 4 {
		t.Fatalf("expected 4 contribution lines, got %d", len(g.Contributions))
	}
}

func TestClusterScoreCountsDistinctPairs(t *testing.T) {
	// same (source, category) twice plus one other pair: score is 2, not 3
	projections := []models.Projection{
		proj(date(2026, 3, 1), "a", 90, models.CycleStandard),
		proj(date(2026, 3, 2), "a", 120, models.CycleStandard),
		proj(date(2026, 3, 2), "b", 55, models.CycleFibonacci),
	}
	groups := Cluster(projections, 3, 15)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Score != 2 {
		t.Fatalf("expected score 2, got %d", groups[0].Score)
	}
}

func TestClusterDropsSingletons(t *testing.T) {
	projections := []models.Projection{
		proj(date(2026, 3, 1), "a", 90, models.CycleStandard),
		proj(date(2026, 5, 1), "b", 144, models.CycleStandard),
	}
	if groups := Cluster(projections, 3, 15); len(groups) != 0 {
		t.Fatalf("expected no groups with score >= 2, got %d", len(groups))
	}
}

func TestClusterMatchesAgainstCenterNotMembers(t *testing.T) {
	// 03-06 is 3 days from the 03-03 member but 5 days from the group's
	// re-centered date (03-01), so it opens a new group that then dies
	// as a singleton. Placement is governed by the center alone.
	projections := []models.Projection{
		proj(date(2026, 3, 1), "a", 90, models.CycleStandard),
		proj(date(2026, 3, 3), "b", 144, models.CycleStandard),
		proj(date(2026, 3, 6), "c", 49, models.CycleSquare),
	}
	groups := Cluster(projections, 3, 15)
	if len(groups) != 1 {
		t.Fatalf("expected 1 surviving group, got %d", len(groups))
	}
	if groups[0].Score != 2 {
		t.Fatalf("expected score 2, got %d", groups[0].Score)
	}
}

func TestClusterRecentersOnLowerMedian(t *testing.T) {
	projections := []models.Projection{
		proj(date(2026, 3, 1), "a", 90, models.CycleStandard),
		proj(date(2026, 3, 4), "b", 144, models.CycleStandard),
	}
	groups := Cluster(projections, 3, 15)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	// even member count takes the element left of the midpoint
	if !groups[0].Date.Equal(date(2026, 3, 1)) {
		t.Fatalf("expected center 2026-03-01, got %s", groups[0].Date.Format(models.DateOnly))
	}
}

func TestClusterSortAndTruncate(t *testing.T) {
	var projections []models.Projection
	// three well-separated clusters with scores 2, 3 and 4
	base := map[time.Time]int{
		date(2026, 1, 10): 2,
		date(2026, 2, 20): 4,
		date(2026, 4, 5):  3,
	}
	sources := []string{"a", "b", "c", "d"}
	for center, n := range base {
		for i := 0; i < n; i++ {
			projections = append(projections, proj(center, sources[i], 30+i, models.CycleStandard))
		}
	}
	groups := Cluster(projections, 3, 15)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Score != 4 || groups[1].Score != 3 || groups[2].Score != 2 {
		t.Fatalf("groups not sorted by score: %d %d %d", groups[0].Score, groups[1].Score, groups[2].Score)
	}

	if got := Cluster(projections, 3, 2); len(got) != 2 {
		t.Fatalf("expected truncation to 2 groups, got %d", len(got))
	}
}

func TestClusterScoreTieBreaksByDate(t *testing.T) {
	var projections []models.Projection
	for _, center := range []time.Time{date(2026, 4, 1), date(2026, 2, 1)} {
		projections = append(projections,
			proj(center, "a", 30, models.CycleStandard),
			proj(center, "b", 45, models.CycleStandard),
		)
	}
	groups := Cluster(projections, 3, 15)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if !groups[0].Date.Equal(date(2026, 2, 1)) {
		t.Fatalf("equal scores should order by date, got %s first", groups[0].Date.Format(models.DateOnly))
	}
}

func TestClusterEmptyInput(t *testing.T) {
	if groups := Cluster(nil, 3, 15); groups != nil {
		t.Fatalf("expected nil for empty input, got %v", groups)
	}
}
