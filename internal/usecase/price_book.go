package usecase

import (
	"sync"
	"time"
)

type bookEntry struct {
	price float64
	at    time.Time
}

// PriceBook holds the latest streamed price per symbol. Entries older than
// the staleness window are not served so analyses fall back to REST.
type PriceBook struct {
	mu        sync.RWMutex
	entries   map[string]bookEntry
	staleness time.Duration
}

// NewPriceBook creates a price book with the given staleness window.
func NewPriceBook(staleness time.Duration) *PriceBook {
	if staleness <= 0 {
		staleness = 5 * time.Minute
	}
	return &PriceBook{
		entries:   make(map[string]bookEntry),
		staleness: staleness,
	}
}

// Set records the latest price for a symbol.
func (b *PriceBook) Set(symbol string, price float64) {
	b.mu.Lock()
	b.entries[symbol] = bookEntry{price: price, at: time.Now()}
	b.mu.Unlock()
}

// Price returns the latest fresh price for a symbol.
func (b *PriceBook) Price(symbol string) (float64, bool) {
	b.mu.RLock()
	e, ok := b.entries[symbol]
	b.mu.RUnlock()
	if !ok || time.Since(e.at) > b.staleness {
		return 0, false
	}
	return e.price, true
}
