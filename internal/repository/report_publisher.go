package repository

import (
	"context"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/models"
	domrepo "github.com/ericakcc/gann-btc-predictor/internal/domain/repository"
	pkgkafka "github.com/ericakcc/gann-btc-predictor/pkg/kafka"
)

// KafkaReportPublisher hands completed analysis reports to a Kafka topic,
// keyed by symbol so per-symbol ordering is preserved.
type KafkaReportPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaReportPublisher creates a Kafka-backed ReportPublisher.
func NewKafkaReportPublisher(producer *pkgkafka.Producer, topic string) domrepo.ReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, report *models.AnalysisReport) error {
	return p.producer.Publish(ctx, p.topic, []byte(report.Symbol), report)
}

func (p *KafkaReportPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
