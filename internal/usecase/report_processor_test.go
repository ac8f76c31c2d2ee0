package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"MacroPull/internal/domain/models"
	"MacroPull/internal/report"
	svccache "MacroPull/internal/service/cache"
)

type fakePublisher struct {
	published int
	fail      bool
}

func (f *fakePublisher) PublishBundle(context.Context, *models.AnalysisBundle) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.published++
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeStream struct{ got int }

func (f *fakeStream) Broadcast(*models.AnalysisBundle) { f.got++ }

func bundle() *models.AnalysisBundle {
	return &models.AnalysisBundle{
		GeneratedAt: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
		Sentiment:   models.Sentiment{Mood: models.MoodNeutral, Risk: models.RiskMedium},
	}
}

func TestProcessWritesStoresPublishesBroadcasts(t *testing.T) {
	dir := t.TempDir()
	store := svccache.NewBundleStore(nil, time.Hour)
	pub := &fakePublisher{}
	stream := &fakeStream{}
	p := NewReportProcessor(report.NewAssembler(dir, "economic_report"),
		store, pub, stream, noopMetrics{}, testLogger(t), false)

	if err := p.Process(context.Background(), bundle()); err != nil {
		t.Fatalf("process: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "economic_report_20250615.txt")); err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if pub.published != 1 || stream.got != 1 {
		t.Fatalf("side effects missed: pub=%d stream=%d", pub.published, stream.got)
	}
	latest, ok := store.Latest(context.Background())
	if !ok || !latest.GeneratedAt.Equal(bundle().GeneratedAt) {
		t.Fatalf("latest bundle not stored")
	}
}

func TestProcessSurvivesPublishFailure(t *testing.T) {
	dir := t.TempDir()
	p := NewReportProcessor(report.NewAssembler(dir, "economic_report"),
		svccache.NewBundleStore(nil, time.Hour), &fakePublisher{fail: true}, nil,
		noopMetrics{}, testLogger(t), false)

	if err := p.Process(context.Background(), bundle()); err != nil {
		t.Fatalf("publish failure must not fail processing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "economic_report_20250615.txt")); err != nil {
		t.Fatalf("report file missing after publish failure: %v", err)
	}
}

func TestProcessWithoutOptionalSinks(t *testing.T) {
	dir := t.TempDir()
	p := NewReportProcessor(report.NewAssembler(dir, "economic_report"),
		svccache.NewBundleStore(nil, time.Hour), nil, nil,
		noopMetrics{}, testLogger(t), false)
	if err := p.Process(context.Background(), bundle()); err != nil {
		t.Fatalf("process without kafka/stream: %v", err)
	}
}
