package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	"github.com/ericakcc/gann-btc-predictor/internal/services/levels"
	"github.com/ericakcc/gann-btc-predictor/internal/usecase"
	xlogger "github.com/ericakcc/gann-btc-predictor/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubMarket struct{}

func (stubMarket) DailyBars(_ context.Context, symbol string, days int) ([]models.Bar, error) {
	bars := make([]models.Bar, 60)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.Bar{
			Symbol: symbol,
			Date:   start.AddDate(0, 0, i),
			Open:   50000, High: 50500, Low: 49500, Close: 50000,
		}
	}
	return bars, nil
}

func (stubMarket) CurrentPrice(_ context.Context, _ string) (float64, error) {
	return 50000, nil
}

type stubMetrics struct{}

func (stubMetrics) RecordAnalysis(mode, symbol string)           {}
func (stubMetrics) RecordError(kind string)                      {}
func (stubMetrics) RecordLastPrice(symbol string, price float64) {}
func (stubMetrics) RecordLatency(op string, seconds float64)     {}
func (stubMetrics) RecordPivots(symbol string, count int)        {}
func (stubMetrics) RecordConfluences(symbol string, count int)   {}

func newTestHandler(t *testing.T) *AnalysisHandler {
	t.Helper()
	lgr, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	analyzer := usecase.NewAnalyzer(stubMarket{}, nil, nil, levels.NewCalculator(),
		stubMetrics{}, nil, nil, lgr, usecase.AnalyzerDefaults{})
	return NewAnalysisHandler(lgr, analyzer, nil, nil, nil)
}

func doAnalysis(t *testing.T, e *echo.Echo) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Status
}

func TestAnalyzeThrottledReturns429(t *testing.T) {
	e := echo.New()
	newTestHandler(t).RegisterRoutes(e)

	// burst of 5 per client, so the sixth rapid request is throttled
	for i := 0; i < 5; i++ {
		if status := doAnalysis(t, e); status != http.StatusOK {
			t.Fatalf("request %d inside burst: status %d", i+1, status)
		}
	}
	if status := doAnalysis(t, e); status != http.StatusTooManyRequests {
		t.Fatalf("throttled request: status %d, want %d", status, http.StatusTooManyRequests)
	}
}
