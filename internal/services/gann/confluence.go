package gann

import (
	"fmt"
	"sort"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

// openGroup is a cluster under construction. Groups live in a slice and are
// mutated in place by index; they are matched in creation order.
type openGroup struct {
	center  time.Time
	members []models.Projection
}

// Cluster groups projections whose dates fall within toleranceDays of a
// group's center. This is a single forward pass with first-fit placement:
// a projection joins the first matching group in creation order and is never
// reconsidered, so membership depends on processing order. On insertion the
// center moves to the lower median of the member dates.
//
// Groups scoring fewer than two distinct (source, category) pairs are
// dropped. The survivors are sorted by score descending, date ascending,
// and truncated to maxGroups.
func Cluster(projections []models.Projection, toleranceDays, maxGroups int) []models.ConfluenceGroup {
	if len(projections) == 0 {
		return nil
	}

	var groups []openGroup
	for _, proj := range projections {
		placed := false
		for gi := range groups {
			if absDays(proj.Date, groups[gi].center) <= toleranceDays {
				groups[gi].members = append(groups[gi].members, proj)
				groups[gi].center = lowerMedianDate(groups[gi].members)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, openGroup{center: proj.Date, members: []models.Projection{proj}})
		}
	}

	var results []models.ConfluenceGroup
	for _, g := range groups {
		score := distinctPairs(g.members)
		if score < 2 {
			continue
		}
		contributions := make([]string, 0, len(g.members))
		for _, m := range g.members {
			contributions = append(contributions, fmt.Sprintf("%s +%dd (%s)", m.Source, m.Days, m.Category))
		}
		results = append(results, models.ConfluenceGroup{
			Date:          g.center,
			Score:         score,
			Signal:        models.SignalForScore(score),
			Members:       g.members,
			Contributions: contributions,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Date.Before(results[j].Date)
	})
	if len(results) > maxGroups {
		results = results[:maxGroups]
	}
	return results
}

// lowerMedianDate returns the median member date; for an even member count
// it takes the element just left of the midpoint.
func lowerMedianDate(members []models.Projection) time.Time {
	dates := make([]time.Time, len(members))
	for i, m := range members {
		dates[i] = m.Date
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	mid := len(dates) / 2
	if len(dates)%2 == 0 {
		mid--
	}
	return dates[mid]
}

// distinctPairs counts unique (source, category) contributions.
func distinctPairs(members []models.Projection) int {
	type pair struct {
		source   string
		category models.CycleCategory
	}
	seen := make(map[pair]struct{}, len(members))
	for _, m := range members {
		seen[pair{m.Source, m.Category}] = struct{}{}
	}
	return len(seen)
}

// absDays is the absolute calendar-day distance between two dates.
func absDays(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}
