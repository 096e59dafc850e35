package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	drepo "github.com/ericakcc/gann-btc-predictor/internal/domain/repository"
	dservice "github.com/ericakcc/gann-btc-predictor/internal/domain/service"
	"github.com/ericakcc/gann-btc-predictor/internal/services/gann"
	"github.com/ericakcc/gann-btc-predictor/pkg/cache"
	"github.com/ericakcc/gann-btc-predictor/pkg/logger"
	"github.com/ericakcc/gann-btc-predictor/pkg/util"
)

// AnalyzerDefaults carries configured fallbacks for request parameters.
type AnalyzerDefaults struct {
	HistoryDays       int
	RangeDays         int
	Lookback          int
	MinChangePct      float64
	ClusterTolerance  int
	SeasonalTolerance int
	MaxConfluences    int
	CandleCacheTTL    time.Duration
	ReportCacheTTL    time.Duration
}

// Analyzer orchestrates one analysis run: candle loading, pivot detection,
// cycle projection, confluence clustering, seasonal enhancement, and the
// price-level tables. It serves both auto and manual modes.
type Analyzer struct {
	market   drepo.MarketData
	store    drepo.CandleStore // nil when ClickHouse is disabled
	cache    cache.Service
	levels   dservice.LevelCalculator
	metrics  drepo.Metrics
	pub      drepo.ReportPublisher // nil when Kafka is disabled
	book     *PriceBook
	log      *logger.Logger
	defaults AnalyzerDefaults
}

// NewAnalyzer creates an Analyzer. store and pub may be nil.
func NewAnalyzer(
	market drepo.MarketData,
	store drepo.CandleStore,
	c cache.Service,
	levels dservice.LevelCalculator,
	metrics drepo.Metrics,
	pub drepo.ReportPublisher,
	book *PriceBook,
	log *logger.Logger,
	defaults AnalyzerDefaults,
) *Analyzer {
	if defaults.HistoryDays <= 0 {
		defaults.HistoryDays = 730
	}
	if defaults.RangeDays <= 0 {
		defaults.RangeDays = gann.DefaultRangeDays
	}
	if defaults.CandleCacheTTL <= 0 {
		defaults.CandleCacheTTL = time.Hour
	}
	if defaults.ReportCacheTTL <= 0 {
		defaults.ReportCacheTTL = 15 * time.Minute
	}
	return &Analyzer{
		market:   market,
		store:    store,
		cache:    c,
		levels:   levels,
		metrics:  metrics,
		pub:      pub,
		book:     book,
		log:      log,
		defaults: defaults,
	}
}

// Analyze runs auto-mode analysis: history is fetched and pivots detected.
func (a *Analyzer) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisReport, error) {
	start := time.Now()

	symbol := req.Symbol
	today := util.ParseDateDefault(req.Today, util.Today())
	rangeDays := req.Range
	if rangeDays <= 0 {
		rangeDays = a.defaults.RangeDays
	}
	endDate := today.AddDate(0, 0, rangeDays)

	historyDays := req.HistoryDays
	if historyDays <= 0 {
		historyDays = a.defaults.HistoryDays
	}

	bars, err := a.loadBars(ctx, symbol, historyDays)
	if err != nil {
		a.metrics.RecordError("load_bars")
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no candles available for %s", symbol)
	}

	price, err := a.currentPrice(ctx, symbol, bars)
	if err != nil {
		a.metrics.RecordError("current_price")
		return nil, err
	}

	lookback, minChange := a.pivotParams(req.Lookback, req.MinChange)
	engine := gann.NewEngine(gann.Params{
		Lookback:          lookback,
		MinChangePct:      minChange,
		ClusterTolerance:  a.defaults.ClusterTolerance,
		SeasonalTolerance: a.defaults.SeasonalTolerance,
		MaxGroups:         a.defaults.MaxConfluences,
	})

	pivots := engine.DetectPivots(bars)
	projections, groups, seasonal, err := engine.Confluences(pivots, today, endDate)
	if err != nil {
		return nil, err
	}

	report := a.assembleReport(symbol, today, endDate, price, pivots, projections, groups, seasonal)

	a.metrics.RecordAnalysis("auto", symbol)
	a.metrics.RecordPivots(symbol, len(pivots))
	a.metrics.RecordConfluences(symbol, len(groups))
	a.metrics.RecordLatency("analysis", time.Since(start).Seconds())

	a.cacheReport(ctx, report)
	a.publishReport(ctx, report)

	a.log.Info("analysis complete",
		logger.String("mode", "auto"),
		logger.String("symbol", symbol),
		logger.Int("pivots", len(pivots)),
		logger.Int("projections", len(projections)),
		logger.Int("confluences", len(groups)),
	)
	return report, nil
}

// AnalyzeManual runs analysis against caller-supplied pivots. Entries that
// fail to parse are skipped with a warning.
func (a *Analyzer) AnalyzeManual(ctx context.Context, req *models.ManualAnalysisRequest) (*models.AnalysisReport, error) {
	start := time.Now()

	today := util.ParseDateDefault(req.Today, util.Today())
	rangeDays := req.Range
	if rangeDays <= 0 {
		rangeDays = a.defaults.RangeDays
	}
	endDate := today.AddDate(0, 0, rangeDays)

	pivots := a.parseManualPivots(req.Pivots)
	if len(pivots) == 0 {
		return nil, fmt.Errorf("no valid pivots supplied")
	}

	engine := gann.NewEngine(gann.Params{
		ClusterTolerance:  a.defaults.ClusterTolerance,
		SeasonalTolerance: a.defaults.SeasonalTolerance,
		MaxGroups:         a.defaults.MaxConfluences,
	})

	projections, groups, seasonal, err := engine.Confluences(pivots, today, endDate)
	if err != nil {
		return nil, err
	}

	report := a.assembleReport("", today, endDate, req.CurrentPrice, pivots, projections, groups, seasonal)

	a.metrics.RecordAnalysis("manual", "")
	a.metrics.RecordLatency("analysis", time.Since(start).Seconds())

	a.log.Info("analysis complete",
		logger.String("mode", "manual"),
		logger.Int("pivots", len(pivots)),
		logger.Int("confluences", len(groups)),
	)
	return report, nil
}

// Pivots detects pivots only, without the projection stages.
func (a *Analyzer) Pivots(ctx context.Context, req *models.PivotsRequest) ([]models.Pivot, error) {
	historyDays := req.HistoryDays
	if historyDays <= 0 {
		historyDays = a.defaults.HistoryDays
	}

	bars, err := a.loadBars(ctx, req.Symbol, historyDays)
	if err != nil {
		a.metrics.RecordError("load_bars")
		return nil, err
	}

	lookback, minChange := a.pivotParams(req.Lookback, req.MinChange)
	pivots := gann.DetectPivots(bars, lookback, minChange)
	a.metrics.RecordPivots(req.Symbol, len(pivots))
	return pivots, nil
}

// pivotParams resolves detection parameters: request values win, then
// configured defaults, then the engine's own constants.
func (a *Analyzer) pivotParams(lookback int, minChange float64) (int, float64) {
	if lookback <= 0 {
		lookback = a.defaults.Lookback
	}
	if lookback <= 0 {
		lookback = gann.DefaultLookback
	}
	if minChange <= 0 {
		minChange = a.defaults.MinChangePct
	}
	if minChange <= 0 {
		minChange = gann.DefaultMinChangePct
	}
	return lookback, minChange
}

// Levels computes the three price-level tables for a given price.
func (a *Analyzer) Levels(req *models.LevelsRequest) *models.LevelsReport {
	return &models.LevelsReport{
		Price:            req.Price,
		SquareOfNine:     a.levels.SquareOfNine(req.Price),
		HarmonicLevels:   a.levels.Harmonic(req.Price, req.Layers),
		PercentageLevels: a.levels.Percentage(nil, req.Price),
	}
}

// Seasonal lists seasonal anchor dates inside a window.
func (a *Analyzer) Seasonal(req *models.SeasonalRequest) ([]models.SeasonalDate, error) {
	from := util.ParseDateDefault(req.From, util.Today())
	to := util.ParseDateDefault(req.To, from.AddDate(0, 0, a.defaults.RangeDays))
	if to.Before(from) {
		return nil, fmt.Errorf("to %s is before from %s", to.Format(models.DateOnly), from.Format(models.DateOnly))
	}
	return gann.SeasonalDates(from, to), nil
}

func (a *Analyzer) assembleReport(
	symbol string,
	today, endDate time.Time,
	price float64,
	pivots []models.Pivot,
	projections []models.Projection,
	groups []models.ConfluenceGroup,
	seasonal []models.SeasonalDate,
) *models.AnalysisReport {
	return &models.AnalysisReport{
		Symbol:           symbol,
		AnalysisDate:     today,
		EndDate:          endDate,
		CurrentPrice:     price,
		Pivots:           pivots,
		Projections:      projections,
		Confluences:      groups,
		SeasonalDates:    seasonal,
		SquareOfNine:     a.levels.SquareOfNine(price),
		HarmonicLevels:   a.levels.Harmonic(price, 4),
		PercentageLevels: a.levels.Percentage(pivots, price),
	}
}

func (a *Analyzer) parseManualPivots(entries []models.ManualPivot) []models.Pivot {
	pivots := make([]models.Pivot, 0, len(entries))
	for _, e := range entries {
		date, err := util.ParseDate(e.Date)
		if err != nil {
			a.log.Warn("skipping pivot with invalid date",
				logger.String("date", e.Date), logger.Error(err))
			continue
		}
		pt := models.PivotType(e.Type)
		if !pt.Valid() {
			a.log.Warn("skipping pivot with invalid type",
				logger.String("type", e.Type))
			continue
		}
		if e.Price <= 0 {
			a.log.Warn("skipping pivot with invalid price",
				logger.Float64("price", e.Price))
			continue
		}
		pivots = append(pivots, models.Pivot{Date: date, Type: pt, Price: e.Price})
	}
	sort.Slice(pivots, func(i, j int) bool { return pivots[i].Date.Before(pivots[j].Date) })
	return pivots
}

// loadBars serves candles from cache, then the candle store, then the REST
// API. A fresh REST fetch is written through to both.
func (a *Analyzer) loadBars(ctx context.Context, symbol string, days int) ([]models.Bar, error) {
	key := cache.Key("candles", symbol, days)

	if a.cache != nil {
		var cached []models.Bar
		if err := a.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	from := util.Today().AddDate(0, 0, -days)
	if a.store != nil {
		bars, err := a.store.BarsSince(ctx, symbol, from)
		if err != nil {
			a.log.Warn("candle store read failed, falling back to REST",
				logger.String("symbol", symbol), logger.Error(err))
		} else if a.coversWindow(bars, days) {
			a.cacheBars(ctx, key, bars)
			return bars, nil
		}
	}

	bars, err := a.market.DailyBars(ctx, symbol, days)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	if a.store != nil {
		if err := a.store.StoreBars(ctx, bars); err != nil {
			a.log.Warn("candle store write failed",
				logger.String("symbol", symbol), logger.Error(err))
		}
	}
	a.cacheBars(ctx, key, bars)
	return bars, nil
}

// coversWindow reports whether stored bars reach close enough to today to
// avoid a REST refresh. A two day gap allows for exchange downtime.
func (a *Analyzer) coversWindow(bars []models.Bar, days int) bool {
	if len(bars) == 0 {
		return false
	}
	last := bars[len(bars)-1].Date
	return util.Today().Sub(last) <= 48*time.Hour && len(bars) >= days/2
}

func (a *Analyzer) cacheBars(ctx context.Context, key string, bars []models.Bar) {
	if a.cache == nil || len(bars) == 0 {
		return
	}
	if err := a.cache.Set(ctx, key, bars, a.defaults.CandleCacheTTL); err != nil {
		a.log.Warn("candle cache write failed", logger.Error(err))
	}
}

// currentPrice prefers the streamed price, then REST, then the last close.
func (a *Analyzer) currentPrice(ctx context.Context, symbol string, bars []models.Bar) (float64, error) {
	if a.book != nil {
		if p, ok := a.book.Price(symbol); ok {
			return p, nil
		}
	}
	p, err := a.market.CurrentPrice(ctx, symbol)
	if err == nil {
		return p, nil
	}
	a.log.Warn("current price fetch failed, using last close",
		logger.String("symbol", symbol), logger.Error(err))
	if len(bars) > 0 {
		return bars[len(bars)-1].Close, nil
	}
	return 0, err
}

func (a *Analyzer) cacheReport(ctx context.Context, report *models.AnalysisReport) {
	if a.cache == nil {
		return
	}
	key := cache.Key("report", report.Symbol, report.AnalysisDate.Format(models.DateOnly))
	if err := a.cache.Set(ctx, key, report, a.defaults.ReportCacheTTL); err != nil {
		a.log.Warn("report cache write failed", logger.Error(err))
	}
}

func (a *Analyzer) publishReport(ctx context.Context, report *models.AnalysisReport) {
	if a.pub == nil {
		return
	}
	if err := a.pub.Publish(ctx, report); err != nil {
		a.metrics.RecordError("publish_report")
		a.log.Warn("report publish failed",
			logger.String("symbol", report.Symbol), logger.Error(err))
	}
}
