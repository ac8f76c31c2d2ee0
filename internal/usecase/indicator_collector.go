package usecase

import (
	"context"
	"time"

	"MacroPull/internal/domain/models"
	drepo "MacroPull/internal/domain/repository"
	"MacroPull/internal/rules"
	"MacroPull/internal/service/ratelimit"
	pcache "MacroPull/pkg/cache"
	"MacroPull/pkg/logger"
)

const fredLimiterKey = "fred"

// CollectResult is one pass over the indicator catalog. Series keeps the
// catalog order restricted to indicators that fetched; Unavailable lists
// the ones that did not, also in catalog order.
type CollectResult struct {
	Series      []SeriesData
	Unavailable []string
}

type SeriesData struct {
	Indicator    models.Indicator
	Observations []models.Observation
}

// IndicatorCollector fetches the whole catalog sequentially, pacing calls
// through a token bucket. A failed series is recorded and skipped; one bad
// indicator never aborts the run. When a shared cache is configured, fresh
// enough observations are served from it without spending a FRED call.
type IndicatorCollector struct {
	source  drepo.SeriesSource
	archive drepo.Archive  // nil when clickhouse is disabled
	cache   pcache.Service // nil when redis is disabled
	metrics drepo.Metrics
	limiter *ratelimit.Limiter
	table   *rules.Table
	log     *logger.Logger

	window       int
	capacity     float64
	refillPerSec float64
	seriesTTL    time.Duration
}

func NewIndicatorCollector(
	source drepo.SeriesSource,
	archive drepo.Archive,
	cache pcache.Service,
	metrics drepo.Metrics,
	limiter *ratelimit.Limiter,
	table *rules.Table,
	log *logger.Logger,
	window int,
	capacity, refillPerSec float64,
	seriesTTL time.Duration,
) *IndicatorCollector {
	return &IndicatorCollector{
		source:       source,
		archive:      archive,
		cache:        cache,
		metrics:      metrics,
		limiter:      limiter,
		table:        table,
		log:          log,
		window:       window,
		capacity:     capacity,
		refillPerSec: refillPerSec,
		seriesTTL:    seriesTTL,
	}
}

func (c *IndicatorCollector) Collect(ctx context.Context) (*CollectResult, error) {
	out := &CollectResult{}
	for _, ind := range c.table.Indicators {
		if obs := c.cachedObservations(ctx, ind.ID); len(obs) > 0 {
			c.metrics.RecordIndicatorValue(ind.ID, obs[len(obs)-1].Value)
			out.Series = append(out.Series, SeriesData{Indicator: ind, Observations: obs})
			continue
		}

		if err := c.limiter.Wait(ctx, fredLimiterKey, c.capacity, c.refillPerSec); err != nil {
			return nil, err // context ended mid-run
		}

		start := time.Now()
		obs, err := c.source.Fetch(ctx, ind.ID, c.window)
		c.metrics.RecordLatency("fred_fetch", time.Since(start).Seconds())
		if err != nil {
			c.metrics.RecordError("fetch")
			c.log.Warn("series unavailable",
				logger.String("series", ind.ID), logger.Error(err))
			out.Unavailable = append(out.Unavailable, ind.ID)
			continue
		}

		c.metrics.RecordFetch(ind.ID)
		c.metrics.RecordIndicatorValue(ind.ID, obs[len(obs)-1].Value)
		out.Series = append(out.Series, SeriesData{Indicator: ind, Observations: obs})

		if c.cache != nil {
			if err := c.cache.Set(ctx, c.seriesKey(ind.ID), obs, c.seriesTTL); err != nil {
				c.log.Warn("series cache store failed",
					logger.String("series", ind.ID), logger.Error(err))
			}
		}

		if c.archive != nil {
			if err := c.archive.StoreObservations(ctx, ind.ID, obs); err != nil {
				// archive is best effort, the analysis proceeds either way
				c.metrics.RecordError("archive")
				c.log.Warn("archive store failed",
					logger.String("series", ind.ID), logger.Error(err))
			}
		}
	}
	return out, nil
}

func (c *IndicatorCollector) seriesKey(id string) string {
	return pcache.GenerateKeyWithParams("series", id, c.window)
}

func (c *IndicatorCollector) cachedObservations(ctx context.Context, id string) []models.Observation {
	if c.cache == nil || c.seriesTTL <= 0 {
		return nil
	}
	var obs []models.Observation
	if err := c.cache.Get(ctx, c.seriesKey(id), &obs); err != nil {
		return nil
	}
	return obs
}
