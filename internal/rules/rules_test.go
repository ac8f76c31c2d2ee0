package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTableIsValid(t *testing.T) {
	table := Default()
	if err := table.validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
	if len(table.Indicators) != 14 {
		t.Fatalf("expected 14 indicators, got %d", len(table.Indicators))
	}
}

func TestThresholdsForFallsBack(t *testing.T) {
	table := Default()
	ts := table.ThresholdsFor("GDPC1")
	if ts.DeltaStrong != 0.1 || ts.DeltaMild != 0.01 {
		t.Fatalf("unexpected fallback thresholds %+v", ts)
	}
	fed := table.ThresholdsFor("FEDFUNDS")
	if fed.DeltaStrong != 0.25 {
		t.Fatalf("unexpected FEDFUNDS thresholds %+v", fed)
	}
}

func TestAsymmetricDownside(t *testing.T) {
	ts := Default().ThresholdsFor("PAYEMS")
	if ts.StrongDown() != 50 {
		t.Fatalf("expected downside 50, got %v", ts.StrongDown())
	}
	if ts.MildDown() != ts.DeltaMild {
		t.Fatalf("mild downside should mirror upside")
	}
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	table, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(table.SignalRules) == 0 {
		t.Fatalf("expected default signal rules")
	}
}

func TestLoadPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	body := `
thresholds:
  UNRATE:
    delta_strong: 1.0
    delta_mild: 0.5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if table.ThresholdsFor("UNRATE").DeltaStrong != 1.0 {
		t.Fatalf("override not applied")
	}
	// untouched sections keep their defaults
	if len(table.Indicators) != 14 || len(table.SignalRules) == 0 {
		t.Fatalf("defaults lost on partial override")
	}
}

func TestLoadRejectsUnknownRuleIndicator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	body := `
signal_rules:
  - name: bogus
    direction: buy
    when:
      - indicator: NOPE
        labels: [flat]
    rationale: x
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
