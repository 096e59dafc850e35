package gann

import (
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	dservice "github.com/ericakcc/gann-btc-predictor/internal/domain/service"
)

var _ dservice.ConfluenceEngine = (*Engine)(nil)

// Default engine parameters.
const (
	DefaultLookback          = 14
	DefaultMinChangePct      = 10.0
	DefaultClusterTolerance  = 3
	DefaultSeasonalTolerance = 5
	DefaultMaxGroups         = 15
	DefaultRangeDays         = 360
)

// Params configures one analysis run.
type Params struct {
	Lookback          int
	MinChangePct      float64
	ClusterTolerance  int
	SeasonalTolerance int
	MaxGroups         int
}

// DefaultParams returns the canonical parameter set.
func DefaultParams() Params {
	return Params{
		Lookback:          DefaultLookback,
		MinChangePct:      DefaultMinChangePct,
		ClusterTolerance:  DefaultClusterTolerance,
		SeasonalTolerance: DefaultSeasonalTolerance,
		MaxGroups:         DefaultMaxGroups,
	}
}

// Engine runs the temporal confluence pipeline. It holds no state between
// calls: every method is a pure function of its inputs, so one Engine may be
// shared by concurrent callers.
type Engine struct {
	params Params
}

// NewEngine creates an engine, filling zero-valued params with defaults.
func NewEngine(params Params) *Engine {
	def := DefaultParams()
	if params.Lookback <= 0 {
		params.Lookback = def.Lookback
	}
	if params.MinChangePct <= 0 {
		params.MinChangePct = def.MinChangePct
	}
	if params.ClusterTolerance <= 0 {
		params.ClusterTolerance = def.ClusterTolerance
	}
	if params.SeasonalTolerance <= 0 {
		params.SeasonalTolerance = def.SeasonalTolerance
	}
	if params.MaxGroups <= 0 {
		params.MaxGroups = def.MaxGroups
	}
	return &Engine{params: params}
}

// Params returns the effective parameter set.
func (e *Engine) Params() Params { return e.params }

// DetectPivots runs pivot detection with the engine's parameters.
func (e *Engine) DetectPivots(bars []models.Bar) []models.Pivot {
	return DetectPivots(bars, e.params.Lookback, e.params.MinChangePct)
}

// Confluences runs projection, clustering and seasonal enhancement for the
// given pivots over [today, endDate].
func (e *Engine) Confluences(pivots []models.Pivot, today, endDate time.Time) ([]models.Projection, []models.ConfluenceGroup, []models.SeasonalDate, error) {
	projections, err := Project(pivots, today, endDate)
	if err != nil {
		return nil, nil, nil, err
	}
	groups := Cluster(projections, e.params.ClusterTolerance, e.params.MaxGroups)
	seasonal := SeasonalDates(today, endDate)
	groups = Enhance(groups, seasonal, e.params.SeasonalTolerance)
	return projections, groups, seasonal, nil
}
