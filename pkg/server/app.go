package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "MacroPull/internal/domain/repository"
	"MacroPull/internal/handler/api"
	"MacroPull/internal/usecase"
	pkgch "MacroPull/pkg/clickhouse"
	"MacroPull/pkg/config"
	xhttp "MacroPull/pkg/http"
	pkgkafka "MacroPull/pkg/kafka"
	applogger "MacroPull/pkg/logger"
)

// App encapsulates the entire application lifecycle: the HTTP API, the
// periodic analysis schedule, and the optional Kafka run-request consumer.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	runner     *usecase.AnalysisRunner
	proc       *usecase.ReportProcessor
	handler    *api.AnalysisEchoHandler
	stream     *api.StreamHub
	consumer   *pkgkafka.Consumer
	rh         *usecase.RunRequestHandler
	publisher  drepo.Publisher
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. Consumer, publisher,
// and chClient may be nil when the corresponding backend is disabled.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	runner *usecase.AnalysisRunner,
	proc *usecase.ReportProcessor,
	handler *api.AnalysisEchoHandler,
	stream *api.StreamHub,
	consumer *pkgkafka.Consumer,
	rh *usecase.RunRequestHandler,
	publisher drepo.Publisher,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		runner:    runner,
		proc:      proc,
		handler:   handler,
		stream:    stream,
		consumer:  consumer,
		rh:        rh,
		publisher: publisher,
		chClient:  chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithRequestMetrics(a.log, time.Second),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	if lp, ok := a.publisher.(applogger.Publisher); ok && a.cfg.Kafka.LogTopic != "" {
		a.log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.LogTopic,
			Publisher:      lp,
		})
	}

	if a.consumer != nil && a.rh != nil {
		a.consumer.RegisterHandler(a.rh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", applogger.String("topic", a.rh.Topic()))
	}

	go a.scheduleRuns(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// scheduleRuns executes the analysis on boot and then on the configured
// interval. A schedule of zero leaves only the boot run and external triggers.
func (a *App) scheduleRuns(ctx context.Context) {
	if a.cfg.Analysis.RunOnBoot {
		a.runOnce(ctx)
	}
	if a.cfg.Analysis.Schedule <= 0 {
		return
	}
	ticker := time.NewTicker(a.cfg.Analysis.Schedule)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runOnce(ctx)
		}
	}
}

func (a *App) runOnce(ctx context.Context) {
	bundle, err := a.runner.Run(ctx)
	if err != nil {
		a.log.Error("scheduled run failed", applogger.Error(err))
		return
	}
	if err := a.proc.Process(ctx, bundle); err != nil {
		a.log.Error("scheduled run processing failed", applogger.Error(err))
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.stream != nil {
		a.stream.Close()
	}
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	a.log.RemoveCollector()

	a.log.Info("shutdown complete")
	return nil
}
