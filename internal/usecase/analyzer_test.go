package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	"github.com/ericakcc/gann-btc-predictor/internal/services/levels"
	"github.com/ericakcc/gann-btc-predictor/pkg/cache"
	"github.com/ericakcc/gann-btc-predictor/pkg/logger"
	"github.com/ericakcc/gann-btc-predictor/pkg/util"
)

type fakeMarket struct {
	bars      []models.Bar
	price     float64
	priceErr  error
	barsCalls int
}

func (f *fakeMarket) DailyBars(_ context.Context, _ string, _ int) ([]models.Bar, error) {
	f.barsCalls++
	return f.bars, nil
}

func (f *fakeMarket) CurrentPrice(_ context.Context, _ string) (float64, error) {
	if f.priceErr != nil {
		return 0, f.priceErr
	}
	return f.price, nil
}

type fakeMetrics struct {
	analyses    int
	errors      map[string]int
	pivots      int
	confluences int
}

func (f *fakeMetrics) RecordAnalysis(mode, symbol string) { f.analyses++ }
func (f *fakeMetrics) RecordError(kind string) {
	if f.errors == nil {
		f.errors = make(map[string]int)
	}
	f.errors[kind]++
}
func (f *fakeMetrics) RecordLastPrice(symbol string, price float64) {}
func (f *fakeMetrics) RecordLatency(op string, seconds float64)     {}
func (f *fakeMetrics) RecordPivots(symbol string, count int)        { f.pivots = count }
func (f *fakeMetrics) RecordConfluences(symbol string, count int)   { f.confluences = count }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// swingBars builds a series with a clear high and low swing ending today,
// so pivot detection has something to find.
func swingBars(n int) []models.Bar {
	bars := make([]models.Bar, n)
	start := util.Today().AddDate(0, 0, -(n - 1))
	for i := range bars {
		// triangle wave between 30000 and 90000 with a 60-bar period
		phase := i % 60
		amp := phase
		if phase > 30 {
			amp = 60 - phase
		}
		price := 30000.0 + float64(amp)*2000
		bars[i] = models.Bar{
			Symbol: "BTCUSDT",
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
		}
	}
	return bars
}

func newTestAnalyzer(market *fakeMarket, m *fakeMetrics, c cache.Service, t *testing.T) *Analyzer {
	return NewAnalyzer(market, nil, c, levels.NewCalculator(), m, nil, nil, testLogger(t), AnalyzerDefaults{})
}

func TestAnalyzeProducesReport(t *testing.T) {
	market := &fakeMarket{bars: swingBars(400), price: 65000}
	m := &fakeMetrics{}
	a := newTestAnalyzer(market, m, nil, t)

	report, err := a.Analyze(context.Background(), &models.AnalysisRequest{
		Symbol:    "BTCUSDT",
		Lookback:  5,
		MinChange: 5,
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Symbol != "BTCUSDT" || report.CurrentPrice != 65000 {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if len(report.Pivots) == 0 {
		t.Fatalf("expected pivots from swing series")
	}
	if len(report.Projections) == 0 {
		t.Fatalf("expected projections")
	}
	if len(report.SquareOfNine) == 0 || len(report.HarmonicLevels) == 0 {
		t.Fatalf("expected level tables")
	}
	if !report.EndDate.Equal(report.AnalysisDate.AddDate(0, 0, 360)) {
		t.Fatalf("default range not applied: %s .. %s", report.AnalysisDate, report.EndDate)
	}
	if m.analyses != 1 || m.pivots != len(report.Pivots) {
		t.Fatalf("metrics not recorded: %+v", m)
	}
}

func TestAnalyzeFallsBackToLastClose(t *testing.T) {
	bars := swingBars(200)
	market := &fakeMarket{bars: bars, priceErr: fmt.Errorf("rest down")}
	a := newTestAnalyzer(market, &fakeMetrics{}, nil, t)

	report, err := a.Analyze(context.Background(), &models.AnalysisRequest{Symbol: "BTCUSDT"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.CurrentPrice != bars[len(bars)-1].Close {
		t.Fatalf("expected last close %v, got %v", bars[len(bars)-1].Close, report.CurrentPrice)
	}
}

func TestAnalyzePrefersStreamedPrice(t *testing.T) {
	market := &fakeMarket{bars: swingBars(200), price: 65000}
	book := NewPriceBook(5 * time.Minute)
	book.Set("BTCUSDT", 66123)
	a := NewAnalyzer(market, nil, nil, levels.NewCalculator(), &fakeMetrics{}, nil, book, testLogger(t), AnalyzerDefaults{})

	report, err := a.Analyze(context.Background(), &models.AnalysisRequest{Symbol: "BTCUSDT"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.CurrentPrice != 66123 {
		t.Fatalf("expected streamed price, got %v", report.CurrentPrice)
	}
}

func TestAnalyzeCachesCandles(t *testing.T) {
	market := &fakeMarket{bars: swingBars(200), price: 65000}
	mc := cache.NewMemoryCache()
	defer mc.Close()
	a := newTestAnalyzer(market, &fakeMetrics{}, mc, t)

	for i := 0; i < 2; i++ {
		if _, err := a.Analyze(context.Background(), &models.AnalysisRequest{Symbol: "BTCUSDT"}); err != nil {
			t.Fatalf("analyze #%d: %v", i+1, err)
		}
	}
	if market.barsCalls != 1 {
		t.Fatalf("expected one REST fetch, got %d", market.barsCalls)
	}
}

func TestAnalyzeUsesConfiguredDetectionDefaults(t *testing.T) {
	bars := swingBars(200)

	// swings in the fixture move at most 200%, so a configured threshold of
	// 500% keeps only the first raw pivot
	strict := NewAnalyzer(&fakeMarket{bars: bars, price: 65000}, nil, nil, levels.NewCalculator(),
		&fakeMetrics{}, nil, nil, testLogger(t), AnalyzerDefaults{MinChangePct: 500})
	loose := newTestAnalyzer(&fakeMarket{bars: bars, price: 65000}, &fakeMetrics{}, nil, t)

	req := &models.AnalysisRequest{Symbol: "BTCUSDT"}
	strictReport, err := strict.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("analyze strict: %v", err)
	}
	looseReport, err := loose.Analyze(context.Background(), &models.AnalysisRequest{Symbol: "BTCUSDT"})
	if err != nil {
		t.Fatalf("analyze loose: %v", err)
	}
	if len(strictReport.Pivots) != 1 {
		t.Fatalf("configured min_change_pct ignored: got %d pivots, want 1", len(strictReport.Pivots))
	}
	if len(looseReport.Pivots) <= 1 {
		t.Fatalf("expected many pivots with engine defaults, got %d", len(looseReport.Pivots))
	}

	// explicit request values still win over the configured defaults
	explicit, err := strict.Analyze(context.Background(), &models.AnalysisRequest{
		Symbol: "BTCUSDT", Lookback: 14, MinChange: 10,
	})
	if err != nil {
		t.Fatalf("analyze explicit: %v", err)
	}
	if len(explicit.Pivots) != len(looseReport.Pivots) {
		t.Fatalf("request values did not override configured defaults: %d vs %d",
			len(explicit.Pivots), len(looseReport.Pivots))
	}
}

func TestPivotsUsesConfiguredLookback(t *testing.T) {
	bars := swingBars(200)

	// a configured lookback wider than the series supports yields no pivots
	wide := NewAnalyzer(&fakeMarket{bars: bars}, nil, nil, levels.NewCalculator(),
		&fakeMetrics{}, nil, nil, testLogger(t), AnalyzerDefaults{Lookback: 150})
	narrow := newTestAnalyzer(&fakeMarket{bars: bars}, &fakeMetrics{}, nil, t)

	got, err := wide.Pivots(context.Background(), &models.PivotsRequest{Symbol: "BTCUSDT"})
	if err != nil {
		t.Fatalf("pivots wide: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("configured lookback ignored: got %d pivots, want 0", len(got))
	}

	got, err = narrow.Pivots(context.Background(), &models.PivotsRequest{Symbol: "BTCUSDT"})
	if err != nil {
		t.Fatalf("pivots narrow: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("expected pivots with engine default lookback")
	}
}

func TestAnalyzeManualSkipsInvalidPivots(t *testing.T) {
	a := newTestAnalyzer(&fakeMarket{}, &fakeMetrics{}, nil, t)

	report, err := a.AnalyzeManual(context.Background(), &models.ManualAnalysisRequest{
		CurrentPrice: 95000,
		Today:        "2025-06-01",
		Pivots: []models.ManualPivot{
			{Date: "2024-11-10", Type: "high", Price: 93000},
			{Date: "not-a-date", Type: "high", Price: 1},
			{Date: "2024-01-23", Type: "sideways", Price: 1},
			{Date: "2024-01-23", Type: "low", Price: -5},
			{Date: "2024-01-23", Type: "low", Price: 38500},
		},
	})
	if err != nil {
		t.Fatalf("analyze manual: %v", err)
	}
	if len(report.Pivots) != 2 {
		t.Fatalf("expected 2 valid pivots, got %d", len(report.Pivots))
	}
	if !report.Pivots[0].Date.Before(report.Pivots[1].Date) {
		t.Fatalf("pivots not sorted by date")
	}
	if report.AnalysisDate.Format(models.DateOnly) != "2025-06-01" {
		t.Fatalf("today override not applied: %s", report.AnalysisDate)
	}
}

func TestAnalyzeManualAllInvalid(t *testing.T) {
	a := newTestAnalyzer(&fakeMarket{}, &fakeMetrics{}, nil, t)

	_, err := a.AnalyzeManual(context.Background(), &models.ManualAnalysisRequest{
		CurrentPrice: 95000,
		Pivots:       []models.ManualPivot{{Date: "nope", Type: "high", Price: 1}},
	})
	if err == nil {
		t.Fatalf("expected error when no pivot parses")
	}
}

func TestSeasonalRejectsInvertedWindow(t *testing.T) {
	a := newTestAnalyzer(&fakeMarket{}, &fakeMetrics{}, nil, t)

	if _, err := a.Seasonal(&models.SeasonalRequest{From: "2025-06-01", To: "2025-01-01"}); err == nil {
		t.Fatalf("expected error for to before from")
	}

	dates, err := a.Seasonal(&models.SeasonalRequest{From: "2025-01-01", To: "2025-12-31"})
	if err != nil {
		t.Fatalf("seasonal: %v", err)
	}
	if len(dates) == 0 {
		t.Fatalf("expected seasonal dates in a full year")
	}
}

func TestLevelsReport(t *testing.T) {
	a := newTestAnalyzer(&fakeMarket{}, &fakeMetrics{}, nil, t)

	r := a.Levels(&models.LevelsRequest{Price: 90000, Layers: 4})
	if r.Price != 90000 {
		t.Fatalf("price not echoed: %v", r.Price)
	}
	if len(r.SquareOfNine) == 0 || len(r.HarmonicLevels) == 0 || len(r.PercentageLevels) == 0 {
		t.Fatalf("expected all three level tables")
	}
}
