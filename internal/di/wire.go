//go:build wireinject
// +build wireinject

package di

import (
	"MacroPull/pkg/config"
	"MacroPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideRuleTable,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideSharedCache,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideSeriesSource,
		ProvideArchive,
		ProvideBundleStore,
		ProvideBundlePublisher,

		// Analysis services
		ProvideTrendClassifier,
		ProvideSentimentScorer,
		ProvideSignalGenerator,
		ProvideForecastGenerator,

		// Use cases
		ProvideIndicatorCollector,
		ProvideAnalysisRunner,
		ProvideAssembler,
		ProvideStreamHub,
		ProvideReportProcessor,
		ProvideRunRequestHandler,

		// HTTP
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
