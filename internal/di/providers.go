package di

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/repository"
	dservice "github.com/ericakcc/gann-btc-predictor/internal/domain/service"
	mid "github.com/ericakcc/gann-btc-predictor/internal/middleware"
	internalrepo "github.com/ericakcc/gann-btc-predictor/internal/repository"
	"github.com/ericakcc/gann-btc-predictor/internal/service/binance"
	"github.com/ericakcc/gann-btc-predictor/internal/services/levels"
	"github.com/ericakcc/gann-btc-predictor/internal/usecase"
	"github.com/ericakcc/gann-btc-predictor/pkg/cache"
	pkgch "github.com/ericakcc/gann-btc-predictor/pkg/clickhouse"
	"github.com/ericakcc/gann-btc-predictor/pkg/config"
	pkgkafka "github.com/ericakcc/gann-btc-predictor/pkg/kafka"
	"github.com/ericakcc/gann-btc-predictor/pkg/logger"
	"github.com/ericakcc/gann-btc-predictor/pkg/metrics"
	"github.com/ericakcc/gann-btc-predictor/pkg/queue"
	"github.com/ericakcc/gann-btc-predictor/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	level := "info"
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	return logger.New(&logger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRedisCache connects to Redis, or returns nil when disabled.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.Analysis.Redis.Enabled {
		return nil, nil
	}
	host, port := splitHostPort(cfg.Analysis.Redis.Addr)
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Analysis.Redis.Password),
		cache.WithRedisDB(cfg.Analysis.Redis.DB),
		cache.WithRedisPrefix("gann"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideCache layers an in-memory cache over Redis when available.
func ProvideCache(rc *cache.RedisCache) cache.Service {
	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(1000))
	if rc == nil {
		return mem
	}
	return cache.NewLayeredCache(mem, rc)
}

// ProvideQueue creates the Redis-backed analysis job queue, or nil when
// Redis is disabled.
func ProvideQueue(lgr *logger.Logger, rc *cache.RedisCache, job *usecase.AnalysisJob) *queue.RedisQueue {
	if rc == nil {
		return nil
	}
	q := queue.NewRedisQueue(lgr, &queue.Config{
		Workers:    2,
		RetryLimit: 3,
		RetryDelay: 10 * time.Second,
	}, rc.Client())
	q.RegisterJob(job)
	return q
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideCandleStore creates the ClickHouse candle store and its schema.
func ProvideCandleStore(chClient *pkgch.Client, lgr *logger.Logger) (repository.CandleStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewCHCandleStore(chClient)
	store.SetLogger(lgr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("candle store schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.BatchTimeout),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideReportPublisher creates the Kafka report publisher.
func ProvideReportPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ReportPublisher {
	if producer == nil || cfg.Kafka.ReportTopic == "" {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.ReportTopic)
}

// ProvideKafkaConsumer creates a Kafka consumer for the request topic, or
// nil when Kafka is disabled or no request topic is configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || cfg.Kafka.RequestTopic == "" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideMarketData creates the Binance REST client.
func ProvideMarketData(cfg *config.Config) repository.MarketData {
	return binance.New(cfg.Binance.APIKey, cfg.Binance.SecretKey, float64(cfg.Binance.RequestsPerSec))
}

// ProvideMarketStream creates the Binance WebSocket stream.
func ProvideMarketStream(cfg *config.Config) repository.MarketStream {
	return binance.NewStream(
		cfg.Binance.StreamURL,
		cfg.Binance.Symbols,
		cfg.Binance.ReconnectDelay,
		cfg.Binance.PingInterval,
	)
}

// ProvideLevelCalculator creates the price-level calculator.
func ProvideLevelCalculator() dservice.LevelCalculator {
	return levels.NewCalculator()
}

// ProvidePriceBook creates the shared last-price book.
func ProvidePriceBook() *usecase.PriceBook {
	return usecase.NewPriceBook(5 * time.Minute)
}

// ProvideTickProcessor creates the streamed tick processor.
func ProvideTickProcessor(book *usecase.PriceBook, c cache.Service, m repository.Metrics) *usecase.TickProcessor {
	return usecase.NewTickProcessor(book, c, m, 5*time.Minute)
}

// ProvidePriceCollector creates the stream collector with its pipeline.
func ProvidePriceCollector(
	stream repository.MarketStream,
	processor *usecase.TickProcessor,
	m repository.Metrics,
) *usecase.PriceCollector {
	pipe := mid.NewTickPipeline(processor, m,
		mid.WithMaxRPS(5),
		mid.WithBufferSize(2000),
	)
	return usecase.NewPriceCollector(stream, processor, m, pipe)
}

// ProvideAnalyzer creates the analysis orchestrator.
func ProvideAnalyzer(
	market repository.MarketData,
	store repository.CandleStore,
	c cache.Service,
	lv dservice.LevelCalculator,
	m repository.Metrics,
	pub repository.ReportPublisher,
	book *usecase.PriceBook,
	lgr *logger.Logger,
	cfg *config.Config,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(market, store, c, lv, m, pub, book, lgr, usecase.AnalyzerDefaults{
		HistoryDays:       cfg.Analysis.HistoryDays,
		RangeDays:         cfg.Analysis.RangeDays,
		Lookback:          cfg.Analysis.Lookback,
		MinChangePct:      cfg.Analysis.MinChangePct,
		ClusterTolerance:  cfg.Analysis.ClusterTolerance,
		SeasonalTolerance: cfg.Analysis.SeasonalTolerance,
		MaxConfluences:    cfg.Analysis.MaxConfluences,
		CandleCacheTTL:    cfg.Analysis.CandleCacheTTL,
		ReportCacheTTL:    cfg.Analysis.ReportCacheTTL,
	})
}

// ProvideAnalysisJob creates the background analysis job handler.
func ProvideAnalysisJob(analyzer *usecase.Analyzer, c cache.Service, lgr *logger.Logger) *usecase.AnalysisJob {
	return usecase.NewAnalysisJob(analyzer, c, lgr, time.Hour)
}

// ProvideKafkaRequestHandler creates the request-topic handler.
func ProvideKafkaRequestHandler(cfg *config.Config, analyzer *usecase.Analyzer, m repository.Metrics) *usecase.KafkaRequestHandler {
	if cfg.Kafka.RequestTopic == "" {
		return nil
	}
	return usecase.NewKafkaRequestHandler(cfg.Kafka.RequestTopic, analyzer, m)
}

// ProvideApp assembles the application server. In production with Kafka
// enabled, error logs are aggregated and shipped to a log topic.
func ProvideApp(
	cfg *config.Config,
	lgr *logger.Logger,
	collector *usecase.PriceCollector,
	analyzer *usecase.Analyzer,
	q *queue.RedisQueue,
	c cache.Service,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaRequestHandler,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	store repository.CandleStore,
) *server.App {
	if cfg.Environment == "production" && producer != nil {
		lgr.AddCollector(&logger.CollectionConfig{
			TimeInterval:   time.Minute,
			CountThreshold: 200,
			Topic:          "gann.logs.errors",
			Publisher:      kafkaLogPublisher{producer},
		})
	}
	return server.New(cfg, lgr, collector, analyzer, q, c, consumer, kh, chClient, store)
}

type kafkaLogPublisher struct {
	p *pkgkafka.Producer
}

func (k kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return k.p.Publish(ctx, topic, nil, payload)
}

func splitHostPort(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	var port int
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil || port == 0 {
		port = 6379
	}
	return host, port
}
