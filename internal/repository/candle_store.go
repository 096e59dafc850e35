package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	domrepo "github.com/ericakcc/gann-btc-predictor/internal/domain/repository"
	pkgch "github.com/ericakcc/gann-btc-predictor/pkg/clickhouse"
	applogger "github.com/ericakcc/gann-btc-predictor/pkg/logger"
)

const candleTable = "gann.daily_candles"

var candleSchema = []string{
	`CREATE DATABASE IF NOT EXISTS gann`,
	`CREATE TABLE IF NOT EXISTS ` + candleTable + ` (
        symbol LowCardinality(String),
        date   Date,
        open   Float64,
        high   Float64,
        low    Float64,
        close  Float64
    ) ENGINE = ReplacingMergeTree
    ORDER BY (symbol, date)`,
}

// CHCandleStore persists daily candles in ClickHouse. The ReplacingMergeTree
// engine makes repeated inserts of the same (symbol, date) idempotent.
type CHCandleStore struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

// NewCHCandleStore creates a ClickHouse-backed CandleStore.
func NewCHCandleStore(ch *pkgch.Client) *CHCandleStore {
	return &CHCandleStore{client: ch, db: ch.DB()}
}

var _ domrepo.CandleStore = (*CHCandleStore)(nil)

// SetLogger injects a structured logger.
func (s *CHCandleStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHCandleStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, candleSchema)
}

func (s *CHCandleStore) StoreBars(ctx context.Context, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	const chunkSize = 2000
	for start := 0; start < len(bars); start += chunkSize {
		end := start + chunkSize
		if end > len(bars) {
			end = len(bars)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*6)
		for _, b := range bars[start:end] {
			if b.Symbol == "" || b.Date.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args, b.Symbol, b.Date, b.Open, b.High, b.Low, b.Close)
		}
		if len(values) == 0 {
			continue
		}

		q := fmt.Sprintf("INSERT INTO %s (symbol, date, open, high, low, close) VALUES %s",
			candleTable, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_bars error",
					applogger.String("symbol", bars[start].Symbol),
					applogger.Int("rows", end-start),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store bars: %w", err)
		}
	}
	return nil
}

func (s *CHCandleStore) BarsSince(ctx context.Context, symbol string, from time.Time) ([]models.Bar, error) {
	start := time.Now()
	const q = `
        SELECT symbol, date, open, high, low, close
        FROM ` + candleTable + ` FINAL
        WHERE symbol = ? AND date >= ?
        ORDER BY date ASC
    `
	rows, err := s.db.QueryContext(ctx, q, symbol, from)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse bars_since query error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("bars since: %w", err)
	}
	defer rows.Close()

	out := make([]models.Bar, 0, 1024)
	for rows.Next() {
		var b models.Bar
		var date time.Time
		if err := rows.Scan(&b.Symbol, &date, &b.Open, &b.High, &b.Low, &b.Close); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		b.Date = date.UTC()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse bars_since ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHCandleStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHCandleStore) Close() error {
	return nil // pool managed by pkg client
}
