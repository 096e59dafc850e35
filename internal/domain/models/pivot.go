package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PivotType marks a pivot as a local high or a local low.
type PivotType string

const (
	PivotHigh PivotType = "high"
	PivotLow  PivotType = "low"
)

// Valid reports whether t is one of the two known pivot types.
func (t PivotType) Valid() bool {
	return t == PivotHigh || t == PivotLow
}

// Pivot is a significant local extremum in a bar series. Pivots either come
// out of pivot detection or are supplied by the caller in manual mode.
type Pivot struct {
	Date  time.Time `json:"date"`
	Type  PivotType `json:"type"`
	Price float64   `json:"price"`
}

// Label uniquely identifies the pivot in projection/confluence output,
// e.g. "2024-11-10 high $93,000".
func (p Pivot) Label() string {
	return fmt.Sprintf("%s %s $%s", p.Date.Format(DateOnly), p.Type, commaSeparated(p.Price))
}

// commaSeparated renders a price with thousand separators in the integer
// part. Integral values render without a fractional part.
func commaSeparated(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
