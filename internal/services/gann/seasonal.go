package gann

import (
	"sort"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

// SeasonalDates generates the yearly anchor dates falling inside
// [today, endDate], sorted ascending.
func SeasonalDates(today, endDate time.Time) []models.SeasonalDate {
	var results []models.SeasonalDate
	for year := today.Year(); year <= endDate.Year(); year++ {
		for _, a := range seasonalAnchors {
			d := time.Date(year, time.Month(a.month), a.day, 0, 0, 0, 0, time.UTC)
			if d.Before(today) || d.After(endDate) {
				continue
			}
			results = append(results, models.SeasonalDate{Date: d, Event: a.event})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date.Before(results[j].Date) })
	return results
}

// Enhance tags each confluence with the first seasonal date within
// toleranceDays of its center. First match wins, not nearest; groups with no
// match keep an empty tag. The input slice is annotated in place and returned.
func Enhance(confluences []models.ConfluenceGroup, seasonal []models.SeasonalDate, toleranceDays int) []models.ConfluenceGroup {
	for i := range confluences {
		confluences[i].Seasonal = ""
		for _, sd := range seasonal {
			if absDays(confluences[i].Date, sd.Date) <= toleranceDays {
				confluences[i].Seasonal = sd.Event + " (" + sd.Date.Format(models.DateOnly) + ")"
				break
			}
		}
	}
	return confluences
}
