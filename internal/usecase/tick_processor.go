package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	drepo "github.com/ericakcc/gann-btc-predictor/internal/domain/repository"
	"github.com/ericakcc/gann-btc-predictor/pkg/cache"
)

// TickProcessor applies streamed price ticks: it updates the in-process
// price book, mirrors the price into the shared cache, and records metrics.
type TickProcessor struct {
	book    *PriceBook
	cache   cache.Service
	metrics drepo.Metrics
	ttl     time.Duration
}

// NewTickProcessor creates a TickProcessor. The cache may be nil.
func NewTickProcessor(book *PriceBook, c cache.Service, metrics drepo.Metrics, ttl time.Duration) *TickProcessor {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TickProcessor{book: book, cache: c, metrics: metrics, ttl: ttl}
}

// Process applies a single tick.
func (p *TickProcessor) Process(ctx context.Context, t *models.PriceTick) error {
	if t == nil {
		return fmt.Errorf("tick is nil")
	}

	p.book.Set(t.Symbol, t.Price)
	p.metrics.RecordLastPrice(t.Symbol, t.Price)

	if p.cache != nil {
		if err := p.cache.Set(ctx, cache.Key("price", t.Symbol), t.Price, p.ttl); err != nil {
			p.metrics.RecordError("price_cache")
			return fmt.Errorf("cache price: %w", err)
		}
	}
	return nil
}
