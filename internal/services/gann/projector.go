package gann

import (
	"fmt"
	"sort"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

// Project computes one projected date per (pivot, cycle) pair and keeps the
// dates falling inside [today, endDate], both ends inclusive. The result is
// sorted ascending by date; equal dates keep input iteration order.
func Project(pivots []models.Pivot, today, endDate time.Time) ([]models.Projection, error) {
	if endDate.Before(today) {
		return nil, fmt.Errorf("end date %s before analysis date %s", endDate.Format(models.DateOnly), today.Format(models.DateOnly))
	}

	catalog := Catalog()
	var projections []models.Projection

	for _, p := range pivots {
		if !p.Type.Valid() {
			return nil, fmt.Errorf("pivot %s: unknown type %q", p.Date.Format(models.DateOnly), p.Type)
		}
		label := p.Label()
		for _, c := range catalog {
			d := p.Date.AddDate(0, 0, c.Days)
			if d.Before(today) || d.After(endDate) {
				continue
			}
			projections = append(projections, models.Projection{
				Date:     d,
				Source:   label,
				Days:     c.Days,
				Category: c.Category,
			})
		}
	}

	sort.SliceStable(projections, func(i, j int) bool {
		return projections[i].Date.Before(projections[j].Date)
	})
	return projections, nil
}
