package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	analysesTotal *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
	pivots        *prometheus.GaugeVec
	confluences   *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gann_analyses_total",
				Help: "Total number of analysis runs",
			},
			[]string{"mode", "symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gann_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gann_last_price",
				Help: "Last observed price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gann_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		pivots: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gann_pivots_detected",
				Help: "Pivot count from the most recent analysis",
			},
			[]string{"symbol"},
		),
		confluences: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gann_confluences_found",
				Help: "Confluence group count from the most recent analysis",
			},
			[]string{"symbol"},
		),
	}
}

// RecordAnalysis counts a completed analysis run.
func (r *Recorder) RecordAnalysis(mode, symbol string) {
	r.analysesTotal.WithLabelValues(mode, symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordPivots records the pivot count of the latest run.
func (r *Recorder) RecordPivots(symbol string, count int) {
	r.pivots.WithLabelValues(symbol).Set(float64(count))
}

// RecordConfluences records the confluence count of the latest run.
func (r *Recorder) RecordConfluences(symbol string, count int) {
	r.confluences.WithLabelValues(symbol).Set(float64(count))
}
