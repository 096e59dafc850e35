package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericakcc/gann-btc-predictor/internal/domain/repository"
	"github.com/ericakcc/gann-btc-predictor/internal/handler/api"
	"github.com/ericakcc/gann-btc-predictor/internal/usecase"
	"github.com/ericakcc/gann-btc-predictor/pkg/cache"
	pkgch "github.com/ericakcc/gann-btc-predictor/pkg/clickhouse"
	"github.com/ericakcc/gann-btc-predictor/pkg/config"
	xhttp "github.com/ericakcc/gann-btc-predictor/pkg/http"
	pkgkafka "github.com/ericakcc/gann-btc-predictor/pkg/kafka"
	applogger "github.com/ericakcc/gann-btc-predictor/pkg/logger"
	"github.com/ericakcc/gann-btc-predictor/pkg/queue"
)

// App encapsulates the application lifecycle: the price collector, the job
// queue, the Kafka request consumer, and the HTTP server.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	collector  *usecase.PriceCollector
	analyzer   *usecase.Analyzer
	queue      *queue.RedisQueue
	cache      cache.Service
	consumer   *pkgkafka.Consumer
	kh         *usecase.KafkaRequestHandler
	chClient   *pkgch.Client
	store      repository.CandleStore
	httpServer *xhttp.Server
}

// New creates a new App instance. queue, consumer, kh, chClient, and store
// may be nil depending on configuration.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.PriceCollector,
	analyzer *usecase.Analyzer,
	q *queue.RedisQueue,
	c cache.Service,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaRequestHandler,
	chClient *pkgch.Client,
	store repository.CandleStore,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		collector: collector,
		analyzer:  analyzer,
		queue:     q,
		cache:     c,
		consumer:  consumer,
		kh:        kh,
		chClient:  chClient,
		store:     store,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var qsvc queue.Service
	if a.queue != nil {
		qsvc = a.queue
	}
	handler := api.NewAnalysisHandler(a.log, a.analyzer, qsvc, a.cache, a.healthStatus)
	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	go func() {
		if err := a.collector.Start(ctx); err != nil {
			a.log.Error("collector error", applogger.Error(err))
		}
	}()
	a.log.Info("price collector started", applogger.Strings("symbols", a.cfg.Binance.Symbols))

	if a.queue != nil {
		if err := a.queue.Start(); err != nil {
			a.log.Error("queue start error", applogger.Error(err))
			return err
		}
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// healthStatus reports the state of each wired dependency.
func (a *App) healthStatus() map[string]interface{} {
	status := map[string]interface{}{
		"stream_connected": a.collector.IsConnected(),
	}
	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.store.Health(ctx); err != nil {
			status["clickhouse"] = "down"
		} else {
			status["clickhouse"] = "ok"
		}
	}
	return status
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if err := a.collector.Shutdown(ctx); err != nil {
		a.log.Warn("collector stop error", applogger.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.queue != nil {
		if err := a.queue.Stop(shutdownCtx); err != nil {
			a.log.Warn("queue stop error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.RemoveCollector()
	a.log.Info("shutdown complete")
	return nil
}
