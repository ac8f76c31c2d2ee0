package usecase

import (
	"context"
	"fmt"
	"time"

	"MacroPull/internal/domain/models"
	drepo "MacroPull/internal/domain/repository"
	"MacroPull/internal/report"
	"MacroPull/pkg/logger"
)

// BundleBroadcaster pushes a finished bundle to live subscribers.
type BundleBroadcaster interface {
	Broadcast(b *models.AnalysisBundle)
}

// ReportProcessor handles everything that happens to a finished bundle:
// store it for the read endpoints, render and persist the text report,
// publish to Kafka, and push to stream subscribers. Publishing and
// broadcasting are best effort; a Kafka outage never loses the report file.
type ReportProcessor struct {
	assembler *report.Assembler
	store     drepo.BundleStore
	publisher drepo.Publisher   // nil when kafka is disabled
	stream    BundleBroadcaster // nil when the http server is disabled
	metrics   drepo.Metrics
	log       *logger.Logger
	console   bool
}

func NewReportProcessor(
	assembler *report.Assembler,
	store drepo.BundleStore,
	publisher drepo.Publisher,
	stream BundleBroadcaster,
	metrics drepo.Metrics,
	log *logger.Logger,
	console bool,
) *ReportProcessor {
	return &ReportProcessor{
		assembler: assembler,
		store:     store,
		publisher: publisher,
		stream:    stream,
		metrics:   metrics,
		log:       log,
		console:   console,
	}
}

func (p *ReportProcessor) Process(ctx context.Context, b *models.AnalysisBundle) error {
	start := time.Now()

	if err := p.store.SetLatest(ctx, b); err != nil {
		p.metrics.RecordError("bundle_store")
		p.log.Warn("bundle store failed", logger.Error(err))
	}

	path, err := p.assembler.Write(b)
	if err != nil {
		p.metrics.RecordError("report_write")
		return fmt.Errorf("process bundle: %w", err)
	}
	if p.console {
		fmt.Println(p.assembler.Build(b))
	}

	if p.publisher != nil {
		if err := p.publisher.PublishBundle(ctx, b); err != nil {
			p.metrics.RecordError("publish")
			p.log.Error("bundle publish failed", logger.Error(err))
		}
	}
	if p.stream != nil {
		p.stream.Broadcast(b)
	}

	p.metrics.RecordLatency("report_process", time.Since(start).Seconds())
	p.log.Info("report written", logger.String("path", path))
	return nil
}
