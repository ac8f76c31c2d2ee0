package volatility

import (
	"testing"
	"time"

	"MacroPull/internal/domain/models"
)

func series(values ...float64) []models.Observation {
	out := make([]models.Observation, len(values))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		out[i] = models.Observation{Date: base.AddDate(0, i, 0), Value: v}
	}
	return out
}

func TestAnalyzeInsufficientData(t *testing.T) {
	a := NewAnalyzer()
	if got := a.Analyze(series(1, 2, 3)); got != models.VolUnknown {
		t.Fatalf("short series: got %s", got)
	}
	if got := a.Analyze(nil); got != models.VolUnknown {
		t.Fatalf("nil series: got %s", got)
	}
}

func TestAnalyzeConstantSeriesIsLow(t *testing.T) {
	a := NewAnalyzer()
	vals := make([]float64, 12)
	for i := range vals {
		vals[i] = 100
	}
	if got := a.Analyze(series(vals...)); got != models.VolLow {
		t.Fatalf("constant series: got %s", got)
	}
}

func TestAnalyzeSwingingSeriesIsHigh(t *testing.T) {
	a := NewAnalyzer()
	// alternating +-30% moves
	vals := []float64{100, 130, 91, 118, 83, 108, 75, 98, 68, 89, 62, 81}
	if got := a.Analyze(series(vals...)); got != models.VolHigh {
		t.Fatalf("swinging series: got %s", got)
	}
}

func TestAnalyzeSteadyDriftIsMediumOrLow(t *testing.T) {
	a := NewAnalyzer()
	// steady 1% drift has near-zero dispersion of changes
	vals := make([]float64, 12)
	vals[0] = 100
	for i := 1; i < len(vals); i++ {
		vals[i] = vals[i-1] * 1.01
	}
	if got := a.Analyze(series(vals...)); got != models.VolLow {
		t.Fatalf("steady drift: got %s", got)
	}
}

func TestAnalyzeSkipsZeroBase(t *testing.T) {
	a := NewAnalyzer()
	vals := []float64{0, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100}
	if got := a.Analyze(series(vals...)); got != models.VolLow {
		t.Fatalf("zero base: got %s", got)
	}
}
