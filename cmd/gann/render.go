package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

// renderReport prints a human-readable version of the analysis report.
func renderReport(w io.Writer, r *models.AnalysisReport) {
	line := strings.Repeat("=", 64)

	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Gann time analysis  %s\n", r.Symbol)
	fmt.Fprintf(w, "Window: %s .. %s   Price: $%.2f\n",
		r.AnalysisDate.Format(models.DateOnly),
		r.EndDate.Format(models.DateOnly),
		r.CurrentPrice)
	fmt.Fprintln(w, line)

	fmt.Fprintf(w, "\nPivots (%d)\n", len(r.Pivots))
	for _, p := range r.Pivots {
		fmt.Fprintf(w, "  %s\n", p.Label())
	}

	fmt.Fprintf(w, "\nConfluence dates (%d of %d projections)\n", len(r.Confluences), len(r.Projections))
	for _, g := range r.Confluences {
		fmt.Fprintf(w, "  %s %s  score %d  (%s)\n",
			stars(g.Signal), g.Date.Format(models.DateOnly), g.Score, g.Signal)
		for _, c := range g.Contributions {
			fmt.Fprintf(w, "      %s\n", c)
		}
		if g.Seasonal != "" {
			fmt.Fprintf(w, "      near: %s\n", g.Seasonal)
		}
	}

	if len(r.SeasonalDates) > 0 {
		fmt.Fprintf(w, "\nSeasonal dates in window\n")
		for _, s := range r.SeasonalDates {
			fmt.Fprintf(w, "  %s  %s\n", s.Date.Format(models.DateOnly), s.Event)
		}
	}

	if len(r.SquareOfNine) > 0 {
		fmt.Fprintf(w, "\nSquare of nine\n")
		fmt.Fprintf(w, "  %-8s %12s %12s %12s %12s\n", "angle", "res2", "res1", "sup1", "sup2")
		for _, row := range r.SquareOfNine {
			fmt.Fprintf(w, "  %-8s %12.2f %12.2f %12.2f %12.2f\n",
				row.Angle, row.Resistance2, row.Resistance1, row.Support1, row.Support2)
		}
	}

	if len(r.HarmonicLevels) > 0 {
		fmt.Fprintf(w, "\nHarmonic levels\n")
		for _, h := range r.HarmonicLevels {
			fmt.Fprintf(w, "  layer %d  %-14s res %12.2f  sup %12.2f\n",
				h.Layer, h.Interval, h.Resistance, h.Support)
		}
	}

	if len(r.PercentageLevels) > 0 {
		fmt.Fprintf(w, "\nPercentage levels\n")
		for _, p := range r.PercentageLevels {
			fmt.Fprintf(w, "  %-28s %-12s %12.2f\n", p.Source, p.Method, p.Level)
		}
	}
	fmt.Fprintln(w)
}

func stars(s models.Signal) string {
	switch s {
	case models.SignalStrong:
		return "***"
	case models.SignalMedium:
		return "** "
	default:
		return "*  "
	}
}
