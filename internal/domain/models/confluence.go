package models

import "time"

// Signal classifies confluence strength by score.
type Signal string

const (
	SignalStrong Signal = "strong"
	SignalMedium Signal = "medium"
	SignalWeak   Signal = "weak"
)

// SignalForScore maps a confluence score to its signal bucket.
func SignalForScore(score int) Signal {
	switch {
	case score >= 5:
		return SignalStrong
	case score >= 3:
		return SignalMedium
	default:
		return SignalWeak
	}
}

// ConfluenceGroup is a cluster of projections whose dates fall within the
// clustering tolerance of each other. Score counts distinct
// (source, category) pairs among members, not raw member count.
type ConfluenceGroup struct {
	Date          time.Time    `json:"date"`
	Score         int          `json:"score"`
	Signal        Signal       `json:"signal"`
	Members       []Projection `json:"members"`
	Contributions []string     `json:"contributions"`
	Seasonal      string       `json:"seasonal,omitempty"`
}

// SeasonalDate is one astronomical/calendar anchor inside the analysis window.
type SeasonalDate struct {
	Date  time.Time `json:"date"`
	Event string    `json:"event"`
}
