package repository

import (
	"context"

	"MacroPull/internal/domain/models"
)

// SeriesSource fetches the most recent observations for a series,
// oldest first. Implementations return *fred.FetchError on transport
// or payload failures so callers can skip the series and continue.
type SeriesSource interface {
	Fetch(ctx context.Context, seriesID string, window int) ([]models.Observation, error)
}

// Publisher ships finished analysis bundles to downstream consumers.
type Publisher interface {
	PublishBundle(ctx context.Context, b *models.AnalysisBundle) error
	Close() error
}

// Archive keeps raw observations for offline inspection. Analyses are
// never archived; only the fetched inputs are.
type Archive interface {
	Init(ctx context.Context) error // ensure tables, health checks
	StoreObservations(ctx context.Context, seriesID string, obs []models.Observation) error
	Health(ctx context.Context) error // ping
	Close() error
}

// BundleStore holds the latest analysis bundle for read endpoints.
type BundleStore interface {
	SetLatest(ctx context.Context, b *models.AnalysisBundle) error
	Latest(ctx context.Context) (*models.AnalysisBundle, bool)
}

type Metrics interface {
	RecordFetch(series string)
	RecordIndicatorValue(series string, value float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordSignals(count int)
}
