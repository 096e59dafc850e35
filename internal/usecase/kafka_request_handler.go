package usecase

import (
	"context"
	"encoding/json"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	drepo "github.com/ericakcc/gann-btc-predictor/internal/domain/repository"
	pkgkafka "github.com/ericakcc/gann-btc-predictor/pkg/kafka"
)

// KafkaRequestHandler consumes analysis requests from Kafka and runs them.
// Results reach downstream consumers through the report topic.
type KafkaRequestHandler struct {
	topic    string
	analyzer *Analyzer
	metrics  drepo.Metrics
}

func NewKafkaRequestHandler(topic string, analyzer *Analyzer, metrics drepo.Metrics) *KafkaRequestHandler {
	return &KafkaRequestHandler{topic: topic, analyzer: analyzer, metrics: metrics}
}

func (h *KafkaRequestHandler) Topic() string { return h.topic }

func (h *KafkaRequestHandler) Handle(ctx context.Context, b []byte) error {
	var req models.AnalysisRequest
	if err := json.Unmarshal(b, &req); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if req.Symbol == "" {
		req.Symbol = "BTCUSDT"
	}

	if _, err := h.analyzer.Analyze(ctx, &req); err != nil {
		h.metrics.RecordError("consumer_analyze")
		return err
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaRequestHandler)(nil)
