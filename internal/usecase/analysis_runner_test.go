package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"MacroPull/internal/domain/models"
	"MacroPull/internal/rules"
	"MacroPull/internal/service/fred"
	"MacroPull/internal/service/ratelimit"
	"MacroPull/internal/services/forecast"
	"MacroPull/internal/services/sentiment"
	"MacroPull/internal/services/signal"
	"MacroPull/internal/services/trend"
	"MacroPull/internal/services/volatility"
	"MacroPull/pkg/logger"
)

// fakeSource serves canned observations and fails listed series.
type fakeSource struct {
	data map[string][]float64
	fail map[string]bool
}

func (f *fakeSource) Fetch(_ context.Context, seriesID string, _ int) ([]models.Observation, error) {
	if f.fail[seriesID] {
		return nil, &fred.FetchError{SeriesID: seriesID, Cause: context.DeadlineExceeded}
	}
	values, ok := f.data[seriesID]
	if !ok {
		return nil, &fred.FetchError{SeriesID: seriesID, Cause: context.DeadlineExceeded}
	}
	obs := make([]models.Observation, len(values))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		obs[i] = models.Observation{Date: base.AddDate(0, i, 0), Value: v}
	}
	return obs, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordFetch(string)                   {}
func (noopMetrics) RecordIndicatorValue(string, float64) {}
func (noopMetrics) RecordError(string)                   {}
func (noopMetrics) RecordLatency(string, float64)        {}
func (noopMetrics) RecordSignals(int)                    {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newRunner(t *testing.T, src *fakeSource) *AnalysisRunner {
	t.Helper()
	table := rules.Default()
	log := testLogger(t)
	collector := NewIndicatorCollector(src, nil, nil, noopMetrics{}, ratelimit.New(),
		table, log, 12, 100, 100, 0)
	scorer := sentiment.NewScorer(table)
	return NewAnalysisRunner(
		collector,
		trend.NewClassifier(table, volatility.NewAnalyzer()),
		signal.NewGenerator(table),
		forecast.NewGenerator(table, scorer),
		scorer,
		noopMetrics{},
		log,
	)
}

func allSeries(values []float64) map[string][]float64 {
	out := make(map[string][]float64)
	for _, ind := range rules.Default().Indicators {
		out[ind.ID] = values
	}
	return out
}

func TestRunFullCatalog(t *testing.T) {
	src := &fakeSource{data: allSeries([]float64{100, 100})}
	bundle, err := newRunner(t, src).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(bundle.Classifications) != 14 {
		t.Fatalf("expected 14 classifications, got %d", len(bundle.Classifications))
	}
	if len(bundle.Unavailable) != 0 {
		t.Fatalf("unexpected unavailable %v", bundle.Unavailable)
	}
	// flat everywhere: no signals, bearish keys count positive
	if len(bundle.Signals) != 0 {
		t.Fatalf("flat data produced signals: %+v", bundle.Signals)
	}
	for _, c := range bundle.Classifications {
		if c.Label != models.TrendFlat {
			t.Fatalf("%s: expected flat, got %s", c.Indicator.ID, c.Label)
		}
	}
}

func TestRunSkipsFailedSeries(t *testing.T) {
	src := &fakeSource{
		data: allSeries([]float64{100, 100}),
		fail: map[string]bool{"GDPC1": true, "DGS10": true},
	}
	bundle, err := newRunner(t, src).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(bundle.Classifications) != 12 {
		t.Fatalf("expected 12 classifications, got %d", len(bundle.Classifications))
	}
	if len(bundle.Unavailable) != 2 || bundle.Unavailable[0] != "GDPC1" || bundle.Unavailable[1] != "DGS10" {
		t.Fatalf("unexpected unavailable %v", bundle.Unavailable)
	}
	if _, ok := bundle.Classification("GDPC1"); ok {
		t.Fatalf("failed series leaked into classifications")
	}
}

func TestRunClassificationOrderFollowsCatalog(t *testing.T) {
	src := &fakeSource{data: allSeries([]float64{100, 100})}
	bundle, err := newRunner(t, src).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, ind := range rules.Default().Indicators {
		if bundle.Classifications[i].Indicator.ID != ind.ID {
			t.Fatalf("position %d: got %s want %s", i,
				bundle.Classifications[i].Indicator.ID, ind.ID)
		}
	}
}

func TestRunEasingScenario(t *testing.T) {
	data := allSeries([]float64{100, 100})
	data["FEDFUNDS"] = []float64{5.0, 4.5}   // strong cut
	data["UNRATE"] = []float64{4.4, 4.2}     // falling
	data["CPIAUCSL"] = []float64{310, 309.5} // falling
	src := &fakeSource{data: data}

	bundle, err := newRunner(t, src).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(bundle.Signals) != 2 {
		t.Fatalf("expected fed-easing and goldilocks, got %+v", bundle.Signals)
	}
	for _, s := range bundle.Signals {
		if s.Direction != models.SignalBuy {
			t.Fatalf("expected buy signals, got %+v", s)
		}
	}
	// three bearish keys falling vote positive, three stalled bullish keys
	// vote negative: an even split reads neutral
	if bundle.Sentiment.Mood != models.MoodNeutral || bundle.Sentiment.PositiveVotes != 3 {
		t.Fatalf("expected neutral mood with 3 up votes, got %+v", bundle.Sentiment)
	}
	var fedNote bool
	for _, n := range bundle.Forecasts {
		if strings.Contains(n.Text, "fall may continue") && n.IndicatorID == "FEDFUNDS" {
			fedNote = true
		}
	}
	if !fedNote {
		t.Fatalf("expected a fed strong-fall note, got %+v", bundle.Forecasts)
	}
}

func TestRunOmittingIndicatorIsLocal(t *testing.T) {
	data := allSeries([]float64{100, 100})
	data["UMCSENT"] = []float64{70, 80} // strong rise -> buy signal
	full := &fakeSource{data: data}
	partial := &fakeSource{data: data, fail: map[string]bool{"HOUST": true}}

	a, err := newRunner(t, full).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := newRunner(t, partial).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(a.Signals) != len(b.Signals) || len(a.Signals) != 1 {
		t.Fatalf("dropping HOUST changed signals: %d vs %d", len(a.Signals), len(b.Signals))
	}
	ca, _ := a.Classification("UMCSENT")
	cb, _ := b.Classification("UMCSENT")
	if ca.Label != cb.Label {
		t.Fatalf("dropping HOUST changed UMCSENT label")
	}
}
