package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"MacroPull/internal/domain/models"
)

func sampleBundle() *models.AnalysisBundle {
	return &models.AnalysisBundle{
		GeneratedAt: time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC),
		Classifications: []models.Classification{
			{
				Indicator:   models.Indicator{ID: "UNRATE", Name: "Unemployment Rate"},
				Label:       models.TrendMildFall,
				LatestValue: 4.1,
				LatestDate:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Sentiment: models.Sentiment{
			Mood: models.MoodPositive, Risk: models.RiskLow,
			PositiveVotes: 3, NegativeVotes: 1,
		},
		Signals: []models.Signal{
			{Direction: models.SignalBuy, Rationale: "Fed rate cut", Indicators: []string{"FEDFUNDS"}},
		},
		Forecasts:   []models.ForecastNote{{IndicatorID: "UNRATE", Text: "Unemployment Rate: fall may continue"}},
		Unavailable: []string{"GDPC1"},
	}
}

func TestBuildSections(t *testing.T) {
	a := NewAssembler(t.TempDir(), "economic_report")
	text := a.Build(sampleBundle())

	for _, want := range []string{
		"Unemployment Rate: 4.10 (2025-05-01) - Mild Fall",
		"Unavailable this run: GDPC1",
		"Risk level: Low Risk",
		"- BUY: Fed rate cut",
		"fall may continue",
		"Low risk environment",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestBuildEmptySignalsShowsWait(t *testing.T) {
	a := NewAssembler(t.TempDir(), "economic_report")
	b := sampleBundle()
	b.Signals = nil
	text := a.Build(b)
	if !strings.Contains(text, "WAIT: no clear signal") {
		t.Fatalf("missing wait line:\n%s", text)
	}
}

func TestWriteDatedFile(t *testing.T) {
	dir := t.TempDir()
	a := NewAssembler(dir, "economic_report")
	path, err := a.Write(sampleBundle())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "economic_report_20250615.txt" {
		t.Fatalf("unexpected file name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "US ECONOMIC DATA ANALYSIS REPORT") {
		t.Fatalf("file content truncated")
	}
}
