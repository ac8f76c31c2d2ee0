package trend

import (
	"errors"
	"testing"
	"time"

	"MacroPull/internal/domain/models"
	"MacroPull/internal/rules"
)

func obs(values ...float64) []models.Observation {
	out := make([]models.Observation, len(values))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		out[i] = models.Observation{Date: base.AddDate(0, i, 0), Value: v}
	}
	return out
}

func classify(t *testing.T, id string, values ...float64) models.Classification {
	t.Helper()
	table := rules.Default()
	ind, ok := table.Indicator(id)
	if !ok {
		t.Fatalf("unknown indicator %s", id)
	}
	c := NewClassifier(table, nil)
	cl, err := c.Classify(ind, obs(values...))
	if err != nil {
		t.Fatalf("classify %s: %v", id, err)
	}
	return cl
}

func TestClassifyEmptyObservations(t *testing.T) {
	c := NewClassifier(rules.Default(), nil)
	_, err := c.Classify(models.Indicator{ID: "UNRATE"}, nil)
	if !errors.Is(err, ErrMissingData) {
		t.Fatalf("expected ErrMissingData, got %v", err)
	}
}

func TestClassifyDeltaBuckets(t *testing.T) {
	cases := []struct {
		id     string
		values []float64
		want   models.TrendLabel
	}{
		{"GDPC1", []float64{100, 100.2}, models.TrendStrongRise},
		{"GDPC1", []float64{100, 100.05}, models.TrendMildRise},
		{"GDPC1", []float64{100, 100.005}, models.TrendFlat},
		{"GDPC1", []float64{100, 99.95}, models.TrendMildFall},
		{"GDPC1", []float64{100, 99.8}, models.TrendStrongFall},
		{"FEDFUNDS", []float64{4.0, 4.5}, models.TrendStrongRise},
		{"FEDFUNDS", []float64{4.5, 4.0}, models.TrendStrongFall},
	}
	for _, tc := range cases {
		cl := classify(t, tc.id, tc.values...)
		if cl.Label != tc.want {
			t.Fatalf("%s %v: got %s want %s", tc.id, tc.values, cl.Label, tc.want)
		}
		if !cl.HasPrior {
			t.Fatalf("%s: expected HasPrior", tc.id)
		}
	}
}

func TestClassifyBoundaryFallsToLowerBucket(t *testing.T) {
	// delta exactly on the strong threshold is only a mild move
	cl := classify(t, "FEDFUNDS", 4.0, 4.25)
	if cl.Label != models.TrendMildRise {
		t.Fatalf("on-threshold delta: got %s want %s", cl.Label, models.TrendMildRise)
	}
	// delta exactly on the mild threshold is flat
	cl = classify(t, "GDPC1", 100, 100.01)
	if cl.Label != models.TrendFlat {
		t.Fatalf("on-mild delta: got %s want %s", cl.Label, models.TrendFlat)
	}
}

func TestClassifyAsymmetricDownside(t *testing.T) {
	cl := classify(t, "PAYEMS", 157000, 156940) // -60K
	if cl.Label != models.TrendStrongFall {
		t.Fatalf("payrolls -60: got %s", cl.Label)
	}
	cl = classify(t, "PAYEMS", 157000, 156970) // -30K
	if cl.Label != models.TrendMildFall {
		t.Fatalf("payrolls -30: got %s", cl.Label)
	}
	cl = classify(t, "PAYEMS", 157000, 157100) // +100K, below the 200K strong bar
	if cl.Label != models.TrendMildRise {
		t.Fatalf("payrolls +100: got %s", cl.Label)
	}
}

func TestClassifySingleObservationLevelBands(t *testing.T) {
	cases := []struct {
		id    string
		value float64
		want  models.TrendLabel
	}{
		{"FEDFUNDS", 5.0, models.TrendStrongRise},
		{"FEDFUNDS", 0.5, models.TrendStrongFall},
		{"FEDFUNDS", 3.0, models.TrendFlat},
		{"FEDFUNDS", 4.5, models.TrendFlat}, // exactly on the band stays flat
		{"GDPC1", 22000, models.TrendFlat},  // unbanded indicator
	}
	for _, tc := range cases {
		cl := classify(t, tc.id, tc.value)
		if cl.Label != tc.want {
			t.Fatalf("%s level %v: got %s want %s", tc.id, tc.value, cl.Label, tc.want)
		}
		if cl.HasPrior {
			t.Fatalf("%s: single observation must not report a prior", tc.id)
		}
	}
}

func TestClassifyUsesLatestPairOnly(t *testing.T) {
	// earlier observations never influence the label
	a := classify(t, "UNRATE", 3.9, 4.0, 4.5)
	b := classify(t, "UNRATE", 5.5, 4.0, 4.5)
	if a.Label != b.Label || a.Label != models.TrendStrongRise {
		t.Fatalf("history leaked into the label: %s vs %s", a.Label, b.Label)
	}
	if a.LatestValue != 4.5 {
		t.Fatalf("unexpected latest value %v", a.LatestValue)
	}
}
