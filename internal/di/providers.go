package di

import (
    "context"
    "fmt"
    "time"

    drepo "MacroPull/internal/domain/repository"
    domsvc "MacroPull/internal/domain/service"
    "MacroPull/internal/handler/api"
    internalrepo "MacroPull/internal/repository"
    "MacroPull/internal/report"
    "MacroPull/internal/rules"
    svccache "MacroPull/internal/service/cache"
    "MacroPull/internal/service/fred"
    "MacroPull/internal/service/ratelimit"
    "MacroPull/internal/services/forecast"
    "MacroPull/internal/services/sentiment"
    "MacroPull/internal/services/signal"
    "MacroPull/internal/services/trend"
    "MacroPull/internal/services/volatility"
    "MacroPull/internal/usecase"
    pkgcache "MacroPull/pkg/cache"
    pkgch "MacroPull/pkg/clickhouse"
    "MacroPull/pkg/config"
    pkgkafka "MacroPull/pkg/kafka"
    "MacroPull/pkg/logger"
    "MacroPull/pkg/metrics"
    "MacroPull/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
    format := "json"
    if cfg.Environment == "development" || cfg.Environment == "test" {
        format = "console"
    }
    return logger.New(&logger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideRuleTable loads the rule tables, falling back to the built-ins.
func ProvideRuleTable(cfg *config.Config) (*rules.Table, error) {
    return rules.Load(cfg.Analysis.RulesPath)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
    return metrics.New()
}

// ProvideSeriesSource creates the FRED API client.
func ProvideSeriesSource(cfg *config.Config) drepo.SeriesSource {
    return fred.NewClient(cfg.FRED.APIKey, cfg.FRED.BaseURL, cfg.FRED.LookbackDays,
        fred.WithTimeout(cfg.FRED.Timeout))
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
        pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
        pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
        pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
        pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
    )
    if err != nil {
        return nil, fmt.Errorf("clickhouse client: %w", err)
    }
    return client, nil
}

// ProvideArchive creates the observation archive, or nil without ClickHouse.
func ProvideArchive(chClient *pkgch.Client, cfg *config.Config) (drepo.Archive, error) {
    if chClient == nil {
        return nil, nil
    }
    archive := internalrepo.NewClickHouseArchive(chClient.DB(),
        cfg.ClickHouse.Database+".macro_observations")

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := archive.Init(ctx); err != nil {
        return nil, fmt.Errorf("archive schema: %w", err)
    }
    return archive, nil
}

// ProvideSharedCache creates the Redis cache, or nil when disabled.
func ProvideSharedCache(cfg *config.Config) (pkgcache.Service, error) {
    if !cfg.Redis.Enabled {
        return nil, nil
    }
    c, err := pkgcache.NewRedisCache(
        pkgcache.WithRedisHost(cfg.Redis.Host),
        pkgcache.WithRedisPort(cfg.Redis.Port),
        pkgcache.WithRedisPassword(cfg.Redis.Password),
        pkgcache.WithRedisDB(cfg.Redis.DB),
    )
    if err != nil {
        return nil, fmt.Errorf("redis cache: %w", err)
    }
    return c, nil
}

// ProvideBundleStore creates the latest-bundle store.
func ProvideBundleStore(shared pkgcache.Service, cfg *config.Config) drepo.BundleStore {
    return svccache.NewBundleStore(shared, cfg.Redis.BundleTTL)
}

// ProvideKafkaProducer creates a Kafka producer, or nil without brokers.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
    if len(cfg.Kafka.Brokers) == 0 {
        return nil, nil
    }
    producer, err := pkgkafka.NewProducer(
        pkgkafka.WithBrokers(cfg.Kafka.Brokers),
        pkgkafka.WithCompression(cfg.Kafka.Compression),
        pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
        pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
        pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
        pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
        pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
        pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
        pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
        pkgkafka.WithHashByKey(true),
    )
    if err != nil {
        return nil, fmt.Errorf("kafka producer: %w", err)
    }
    return producer, nil
}

// ProvideBundlePublisher creates the Kafka bundle publisher, or nil without Kafka.
func ProvideBundlePublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.Publisher {
    if producer == nil {
        return nil
    }
    return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.ReportTopic)
}

// ProvideKafkaConsumer creates the run-request consumer, or nil when no
// request topic is configured.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
    if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.RequestTopic == "" {
        return nil, nil
    }
    consumer, err := pkgkafka.NewConsumer(
        pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
        pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
        pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
        pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
        pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
        pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
        pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
    )
    if err != nil {
        return nil, fmt.Errorf("kafka consumer: %w", err)
    }
    consumer.WithConsumerHook(pkgkafka.NoopHook{})
    return consumer, nil
}

// ProvideTrendClassifier creates the trend classifier with volatility analysis.
func ProvideTrendClassifier(table *rules.Table) domsvc.TrendClassifier {
    return trend.NewClassifier(table, volatility.NewAnalyzer())
}

// ProvideSentimentScorer creates the sentiment scorer.
func ProvideSentimentScorer(table *rules.Table) domsvc.SentimentScorer {
    return sentiment.NewScorer(table)
}

// ProvideSignalGenerator creates the signal generator.
func ProvideSignalGenerator(table *rules.Table) domsvc.SignalGenerator {
    return signal.NewGenerator(table)
}

// ProvideForecastGenerator creates the forecast generator.
func ProvideForecastGenerator(table *rules.Table, scorer domsvc.SentimentScorer) domsvc.ForecastGenerator {
    return forecast.NewGenerator(table, scorer)
}

// ProvideIndicatorCollector creates the paced catalog fetcher.
func ProvideIndicatorCollector(
    source drepo.SeriesSource,
    archive drepo.Archive,
    shared pkgcache.Service,
    m drepo.Metrics,
    table *rules.Table,
    log *logger.Logger,
    cfg *config.Config,
) *usecase.IndicatorCollector {
    return usecase.NewIndicatorCollector(source, archive, shared, m, ratelimit.New(), table, log,
        cfg.FRED.ObservationWindow, cfg.FRED.RateLimit.Capacity, cfg.FRED.RateLimit.RefillPerSec,
        cfg.Redis.SeriesTTL)
}

// ProvideAnalysisRunner creates the analysis runner use case.
func ProvideAnalysisRunner(
    collector *usecase.IndicatorCollector,
    classifier domsvc.TrendClassifier,
    signals domsvc.SignalGenerator,
    forecasts domsvc.ForecastGenerator,
    scorer domsvc.SentimentScorer,
    m drepo.Metrics,
    log *logger.Logger,
) *usecase.AnalysisRunner {
    return usecase.NewAnalysisRunner(collector, classifier, signals, forecasts, scorer, m, log)
}

// ProvideAssembler creates the report assembler.
func ProvideAssembler(cfg *config.Config) *report.Assembler {
    return report.NewAssembler(cfg.Report.OutputDir, cfg.Report.FilePrefix)
}

// ProvideStreamHub creates the websocket broadcast hub.
func ProvideStreamHub(log *logger.Logger) *api.StreamHub {
    return api.NewStreamHub(log)
}

// ProvideReportProcessor creates the bundle post-processing use case.
func ProvideReportProcessor(
    assembler *report.Assembler,
    store drepo.BundleStore,
    publisher drepo.Publisher,
    stream *api.StreamHub,
    m drepo.Metrics,
    log *logger.Logger,
    cfg *config.Config,
) *usecase.ReportProcessor {
    var broadcaster usecase.BundleBroadcaster
    if stream != nil {
        broadcaster = stream
    }
    return usecase.NewReportProcessor(assembler, store, publisher, broadcaster, m, log, cfg.Report.Console)
}

// ProvideRunRequestHandler registers the Kafka run-request handler.
func ProvideRunRequestHandler(
    runner *usecase.AnalysisRunner,
    proc *usecase.ReportProcessor,
    m drepo.Metrics,
    log *logger.Logger,
    cfg *config.Config,
) *usecase.RunRequestHandler {
    return usecase.NewRunRequestHandler(cfg.Kafka.RequestTopic, runner, proc, m, log)
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(
    log *logger.Logger,
    store drepo.BundleStore,
    assembler *report.Assembler,
    runner *usecase.AnalysisRunner,
    proc *usecase.ReportProcessor,
    stream *api.StreamHub,
) *api.AnalysisEchoHandler {
    return api.NewAnalysisEchoHandler(log, store, assembler, runner, proc, stream)
}

// ProvideApp creates the application server.
func ProvideApp(
    cfg *config.Config,
    log *logger.Logger,
    runner *usecase.AnalysisRunner,
    proc *usecase.ReportProcessor,
    handler *api.AnalysisEchoHandler,
    stream *api.StreamHub,
    consumer *pkgkafka.Consumer,
    rh *usecase.RunRequestHandler,
    publisher drepo.Publisher,
    chClient *pkgch.Client,
) *server.App {
    return server.New(cfg, log, runner, proc, handler, stream, consumer, rh, publisher, chClient)
}
