//go:build wireinject
// +build wireinject

package di

import (
	"github.com/ericakcc/gann-btc-predictor/pkg/config"
	"github.com/ericakcc/gann-btc-predictor/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRedisCache,
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideCandleStore,
		ProvideReportPublisher,
		ProvideMarketData,
		ProvideMarketStream,

		// Services
		ProvideLevelCalculator,

		// Use cases
		ProvidePriceBook,
		ProvideTickProcessor,
		ProvidePriceCollector,
		ProvideAnalyzer,
		ProvideAnalysisJob,
		ProvideQueue,
		ProvideKafkaRequestHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
