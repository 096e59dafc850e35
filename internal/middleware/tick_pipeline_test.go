package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
)

type recordingProc struct {
	mu    sync.Mutex
	ticks []*models.PriceTick
	err   error
}

func (r *recordingProc) Process(_ context.Context, t *models.PriceTick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.ticks = append(r.ticks, t)
	return nil
}

func (r *recordingProc) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks)
}

type nopMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func (n *nopMetrics) RecordAnalysis(mode, symbol string)          {}
func (n *nopMetrics) RecordLastPrice(symbol string, price float64) {}
func (n *nopMetrics) RecordLatency(op string, seconds float64)     {}
func (n *nopMetrics) RecordPivots(symbol string, count int)        {}
func (n *nopMetrics) RecordConfluences(symbol string, count int)   {}
func (n *nopMetrics) RecordError(kind string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.errors == nil {
		n.errors = make(map[string]int)
	}
	n.errors[kind]++
}

func tick(symbol string, price float64) *models.PriceTick {
	return &models.PriceTick{Symbol: symbol, Price: price, Timestamp: time.Now().Unix()}
}

func TestPipelineRejectsInvalidTicks(t *testing.T) {
	proc := &recordingProc{}
	p := NewTickPipeline(proc, &nopMetrics{})

	cases := []*models.PriceTick{
		nil,
		{Symbol: "", Price: 100, Timestamp: 1},
		{Symbol: "BTCUSDT", Price: 0, Timestamp: 1},
		{Symbol: "BTCUSDT", Price: 100, Timestamp: 0},
	}
	for i, tc := range cases {
		if err := p.Process(context.Background(), tc); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	if proc.count() != 0 {
		t.Fatalf("invalid ticks reached processor")
	}
}

func TestPipelineThrottlesPerSymbol(t *testing.T) {
	proc := &recordingProc{}
	p := NewTickPipeline(proc, &nopMetrics{}, WithMaxRPS(1))

	for i := 0; i < 5; i++ {
		if err := p.Process(context.Background(), tick("BTCUSDT", 100)); err != nil {
			t.Fatalf("process: %v", err)
		}
	}
	// a different symbol has its own budget
	if err := p.Process(context.Background(), tick("ETHUSDT", 100)); err != nil {
		t.Fatalf("process: %v", err)
	}
	if proc.count() != 2 {
		t.Fatalf("expected 1 tick per symbol through, got %d", proc.count())
	}
}

func TestPipelineBuffersOnProcessorError(t *testing.T) {
	proc := &recordingProc{err: fmt.Errorf("downstream down")}
	m := &nopMetrics{}
	p := NewTickPipeline(proc, m, WithBufferSize(4))

	if err := p.Process(context.Background(), tick("BTCUSDT", 100)); err == nil {
		t.Fatalf("expected downstream error")
	}
	if m.errors["pipeline_process"] != 1 {
		t.Fatalf("processing error not recorded: %+v", m.errors)
	}

	// once downstream recovers, Start flushes the buffered tick
	proc.mu.Lock()
	proc.err = nil
	proc.mu.Unlock()

	p.Start(context.Background())
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for proc.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("buffered tick never flushed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
