package usecase

import (
	"context"
	"time"

	"MacroPull/internal/domain/models"
	drepo "MacroPull/internal/domain/repository"
	domsvc "MacroPull/internal/domain/service"
	"MacroPull/pkg/logger"
)

// AnalysisRunner executes one full analysis pass: collect the catalog,
// classify each fetched series, then derive sentiment, signals, and
// forecasts. The derivation stages are pure; the bundle is their only output.
type AnalysisRunner struct {
	collector  *IndicatorCollector
	classifier domsvc.TrendClassifier
	signals    domsvc.SignalGenerator
	forecasts  domsvc.ForecastGenerator
	sentiment  domsvc.SentimentScorer
	metrics    drepo.Metrics
	log        *logger.Logger
	now        func() time.Time
}

func NewAnalysisRunner(
	collector *IndicatorCollector,
	classifier domsvc.TrendClassifier,
	signals domsvc.SignalGenerator,
	forecasts domsvc.ForecastGenerator,
	sentiment domsvc.SentimentScorer,
	metrics drepo.Metrics,
	log *logger.Logger,
) *AnalysisRunner {
	return &AnalysisRunner{
		collector:  collector,
		classifier: classifier,
		signals:    signals,
		forecasts:  forecasts,
		sentiment:  sentiment,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

func (r *AnalysisRunner) Run(ctx context.Context) (*models.AnalysisBundle, error) {
	start := r.now()
	collected, err := r.collector.Collect(ctx)
	if err != nil {
		return nil, err
	}

	bundle := &models.AnalysisBundle{
		GeneratedAt: start,
		Unavailable: collected.Unavailable,
	}
	for _, s := range collected.Series {
		cl, err := r.classifier.Classify(s.Indicator, s.Observations)
		if err != nil {
			// the collector never hands over an empty series, but a
			// misbehaving source implementation should not kill the run
			r.metrics.RecordError("classify")
			r.log.Error("classify failed",
				logger.String("series", s.Indicator.ID), logger.Error(err))
			bundle.Unavailable = append(bundle.Unavailable, s.Indicator.ID)
			continue
		}
		bundle.Classifications = append(bundle.Classifications, cl)
	}

	bundle.Sentiment = r.sentiment.Score(bundle.Classifications)
	bundle.Signals = r.signals.Generate(bundle.Classifications)
	bundle.Forecasts = r.forecasts.Generate(bundle.Classifications)

	r.metrics.RecordSignals(len(bundle.Signals))
	r.metrics.RecordLatency("analysis_run", time.Since(start).Seconds())
	r.log.Info("analysis run complete",
		logger.Int("classified", len(bundle.Classifications)),
		logger.Int("signals", len(bundle.Signals)),
		logger.Int("forecasts", len(bundle.Forecasts)),
		logger.Strings("unavailable", bundle.Unavailable))
	return bundle, nil
}
