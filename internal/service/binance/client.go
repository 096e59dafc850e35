package binance

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	drepo "github.com/ericakcc/gann-btc-predictor/internal/domain/repository"

	gobinance "github.com/adshao/go-binance/v2"
	"golang.org/x/time/rate"
)

// Client fetches daily candles and spot prices from the Binance REST API.
// Requests go through a rate limiter and retry with exponential backoff.
type Client struct {
	client  *gobinance.Client
	limiter *rate.Limiter
}

// New creates a Binance MarketData client. API keys may be empty since
// klines and ticker prices are public endpoints.
func New(apiKey, secretKey string, requestsPerSec float64) drepo.MarketData {
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	c := gobinance.NewClient(apiKey, secretKey)
	c.HTTPClient = httpClient

	if requestsPerSec <= 0 {
		requestsPerSec = 10
	}

	return &Client{
		client:  c,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 20),
	}
}

// DailyBars fetches the last `days` daily candles for a symbol, oldest first.
func (c *Client) DailyBars(ctx context.Context, symbol string, days int) ([]models.Bar, error) {
	endTime := time.Now().UTC()
	startTime := endTime.AddDate(0, 0, -days)

	var bars []models.Bar
	// Binance caps klines at 1000 per request.
	currentStart := startTime
	for currentStart.Before(endTime) {
		currentEnd := currentStart.AddDate(0, 0, 1000)
		if currentEnd.After(endTime) {
			currentEnd = endTime
		}

		klines, err := c.klinesWithRetry(ctx, symbol,
			currentStart.UnixMilli(), currentEnd.UnixMilli())
		if err != nil {
			return nil, fmt.Errorf("fetch klines %s: %w", symbol, err)
		}

		for _, k := range klines {
			bar, err := barFromKline(symbol, k)
			if err != nil {
				return nil, err
			}
			bars = append(bars, bar)
		}

		currentStart = currentEnd
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// CurrentPrice returns the latest spot price for a symbol.
func (c *Client) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	prices, err := c.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch price %s: %w", symbol, err)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("no price returned for %s", symbol)
	}

	p, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", prices[0].Price, err)
	}
	return p, nil
}

func (c *Client) klinesWithRetry(ctx context.Context, symbol string, startMs, endMs int64) ([]*gobinance.Kline, error) {
	const maxRetries = 3
	backoff := 100 * time.Millisecond

	var klines []*gobinance.Kline
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err = c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		klines, err = c.client.NewKlinesService().
			Symbol(symbol).
			Interval("1d").
			StartTime(startMs).
			EndTime(endMs).
			Limit(1000).
			Do(ctx)
		if err == nil {
			return klines, nil
		}

		if attempt == maxRetries {
			return nil, err
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * backoff
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return klines, nil
}

func barFromKline(symbol string, k *gobinance.Kline) (models.Bar, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("parse open %q: %w", k.Open, err)
	}
	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("parse high %q: %w", k.High, err)
	}
	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("parse low %q: %w", k.Low, err)
	}
	closePx, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return models.Bar{}, fmt.Errorf("parse close %q: %w", k.Close, err)
	}

	date := time.UnixMilli(k.OpenTime).UTC().Truncate(24 * time.Hour)
	return models.Bar{
		Symbol: symbol,
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePx,
	}, nil
}
