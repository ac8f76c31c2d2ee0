package cache

import (
	"context"
	"encoding/json"
	"time"

	"MacroPull/internal/domain/models"
	drepo "MacroPull/internal/domain/repository"
	pcache "MacroPull/pkg/cache"
)

var latestBundleKey = pcache.GenerateKey("bundle", "latest")

// BundleStore keeps the latest analysis bundle in process memory and,
// when a shared cache is configured, mirrors it there so replicas and
// restarts can serve reads without waiting for the next run.
type BundleStore struct {
	mem    *pcache.MemoryCache
	shared pcache.Service // nil when redis is disabled
	ttl    time.Duration
}

func NewBundleStore(shared pcache.Service, ttl time.Duration) *BundleStore {
	return &BundleStore{mem: pcache.NewMemoryCache(), shared: shared, ttl: ttl}
}

func (s *BundleStore) SetLatest(ctx context.Context, b *models.AnalysisBundle) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	if err := s.mem.Set(ctx, latestBundleKey, string(raw), s.ttl); err != nil {
		return err
	}
	if s.shared != nil {
		return s.shared.Set(ctx, latestBundleKey, b, s.ttl)
	}
	return nil
}

func (s *BundleStore) Latest(ctx context.Context) (*models.AnalysisBundle, bool) {
	var raw string
	if err := s.mem.Get(ctx, latestBundleKey, &raw); err == nil {
		var b models.AnalysisBundle
		if json.Unmarshal([]byte(raw), &b) == nil {
			return &b, true
		}
	}
	if s.shared != nil {
		var b models.AnalysisBundle
		if err := s.shared.Get(ctx, latestBundleKey, &b); err == nil {
			return &b, true
		}
	}
	return nil, false
}

var _ drepo.BundleStore = (*BundleStore)(nil)
