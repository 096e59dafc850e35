package repository

import (
	"context"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

// MarketData fetches historical candles and the current price over REST.
type MarketData interface {
	DailyBars(ctx context.Context, symbol string, days int) ([]models.Bar, error)
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// MarketStream pushes live price ticks over a persistent connection.
type MarketStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.PriceTick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// CandleStore persists daily bars and serves them back to analyses.
type CandleStore interface {
	Init(ctx context.Context) error
	StoreBars(ctx context.Context, bars []models.Bar) error
	BarsSince(ctx context.Context, symbol string, from time.Time) ([]models.Bar, error)
	Health(ctx context.Context) error
	Close() error
}

// ReportPublisher hands completed analysis reports to downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, report *models.AnalysisReport) error
	Close() error
}

// Metrics records operational counters for the service.
type Metrics interface {
	RecordAnalysis(mode, symbol string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
	RecordPivots(symbol string, count int)
	RecordConfluences(symbol string, count int)
}
