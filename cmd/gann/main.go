package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	"github.com/ericakcc/gann-btc-predictor/internal/service/binance"
	"github.com/ericakcc/gann-btc-predictor/internal/services/gann"
	"github.com/ericakcc/gann-btc-predictor/internal/services/levels"
	xhttp "github.com/ericakcc/gann-btc-predictor/pkg/http"
	"github.com/ericakcc/gann-btc-predictor/pkg/util"
)

func main() {
	var (
		symbol      = flag.String("symbol", "BTCUSDT", "trading pair symbol")
		rangeDays   = flag.Int("range", gann.DefaultRangeDays, "projection window in days")
		lookback    = flag.Int("lookback", gann.DefaultLookback, "pivot detection window in bars")
		minChange   = flag.Float64("min-change", gann.DefaultMinChangePct, "pivot significance threshold percent")
		historyDays = flag.Int("history-days", 730, "days of daily candles to fetch")
		today       = flag.String("today", "", "analysis date YYYY-MM-DD (default: current UTC date)")
		server      = flag.String("server", "", "analysis service base URL; empty runs locally")
		asJSON      = flag.Bool("json", false, "print the raw report as JSON")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var (
		report *models.AnalysisReport
		err    error
	)
	if *server != "" {
		report, err = remoteAnalysis(ctx, *server, *symbol, *rangeDays, *lookback, *minChange, *historyDays, *today)
	} else {
		report, err = localAnalysis(ctx, *symbol, *rangeDays, *lookback, *minChange, *historyDays, *today)
	}
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("encode report: %v", err)
		}
		return
	}
	renderReport(os.Stdout, report)
}

// localAnalysis fetches candles straight from Binance and runs the full
// pipeline in-process.
func localAnalysis(ctx context.Context, symbol string, rangeDays, lookback int, minChange float64, historyDays int, todayStr string) (*models.AnalysisReport, error) {
	today := util.ParseDateDefault(todayStr, util.Today())
	endDate := today.AddDate(0, 0, rangeDays)

	market := binance.New("", "", 10)
	bars, err := market.DailyBars(ctx, symbol, historyDays)
	if err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no candles returned for %s", symbol)
	}

	price, err := market.CurrentPrice(ctx, symbol)
	if err != nil {
		price = bars[len(bars)-1].Close
	}

	engine := gann.NewEngine(gann.Params{
		Lookback:     lookback,
		MinChangePct: minChange,
	})
	pivots := engine.DetectPivots(bars)
	projections, groups, seasonal, err := engine.Confluences(pivots, today, endDate)
	if err != nil {
		return nil, err
	}

	calc := levels.NewCalculator()
	return &models.AnalysisReport{
		Symbol:           symbol,
		AnalysisDate:     today,
		EndDate:          endDate,
		CurrentPrice:     price,
		Pivots:           pivots,
		Projections:      projections,
		Confluences:      groups,
		SeasonalDates:    seasonal,
		SquareOfNine:     calc.SquareOfNine(price),
		HarmonicLevels:   calc.Harmonic(price, 4),
		PercentageLevels: calc.Percentage(pivots, price),
	}, nil
}

// remoteAnalysis asks a running service for the report.
func remoteAnalysis(ctx context.Context, base, symbol string, rangeDays, lookback int, minChange float64, historyDays int, today string) (*models.AnalysisReport, error) {
	client := xhttp.NewClient(xhttp.WithTimeout(2 * time.Minute))

	params := map[string][]string{
		"symbol":       {symbol},
		"range":        {fmt.Sprintf("%d", rangeDays)},
		"lookback":     {fmt.Sprintf("%d", lookback)},
		"min_change":   {fmt.Sprintf("%g", minChange)},
		"history_days": {fmt.Sprintf("%d", historyDays)},
	}
	if today != "" {
		params["today"] = []string{today}
	}

	var resp struct {
		Status  int                    `json:"status"`
		Message string                 `json:"message"`
		Data    *models.AnalysisReport `json:"data"`
	}
	err := client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         base + "/api/analysis",
		QueryParams: params,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("empty response from %s", base)
	}
	return resp.Data, nil
}
