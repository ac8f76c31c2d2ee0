package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"MacroPull/internal/domain/models"
)

// ThresholdSet holds the delta buckets and level bands for one indicator.
// All comparisons downstream are strict greater-than; a delta exactly on a
// threshold lands in the lower bucket.
type ThresholdSet struct {
	DeltaStrong float64 `yaml:"delta_strong"` // |delta| above this is a strong move
	DeltaMild   float64 `yaml:"delta_mild"`   // |delta| above this is a mild move
	// Optional asymmetric downside magnitudes. Zero means mirror the upside.
	DeltaStrongDown float64 `yaml:"delta_strong_down,omitempty"`
	DeltaMildDown   float64 `yaml:"delta_mild_down,omitempty"`
	// Level bands classify a single-observation window. Both zero disables
	// banding and a lone observation reads as flat.
	LevelHigh float64 `yaml:"level_high,omitempty"`
	LevelLow  float64 `yaml:"level_low,omitempty"`
}

// StrongDown returns the downside strong magnitude, mirroring upside when unset.
func (t ThresholdSet) StrongDown() float64 {
	if t.DeltaStrongDown != 0 {
		return t.DeltaStrongDown
	}
	return t.DeltaStrong
}

// MildDown returns the downside mild magnitude, mirroring upside when unset.
func (t ThresholdSet) MildDown() float64 {
	if t.DeltaMildDown != 0 {
		return t.DeltaMildDown
	}
	return t.DeltaMild
}

// Banded reports whether level bands are configured.
func (t ThresholdSet) Banded() bool {
	return t.LevelHigh != 0 || t.LevelLow != 0
}

// Condition matches one indicator against a set of acceptable labels.
type Condition struct {
	Indicator string   `yaml:"indicator"`
	Labels    []string `yaml:"labels"`
}

// Matches reports whether the classification satisfies the condition.
func (c Condition) Matches(cl models.Classification) bool {
	for _, l := range c.Labels {
		if models.TrendLabel(l) == cl.Label {
			return true
		}
	}
	return false
}

// SignalRule contributes one directional signal when every condition holds.
// Rules are evaluated in table order and are independent of each other.
type SignalRule struct {
	Name      string      `yaml:"name"`
	Direction string      `yaml:"direction"` // buy | sell
	When      []Condition `yaml:"when"`
	Rationale string      `yaml:"rationale"`
}

// ForecastRule emits an advisory note. An empty Indicator makes the rule a
// wildcard applied to every classification; wildcard rules award at most one
// note per indicator, first match wins. Targeted and mood rules always fire
// when they match.
type ForecastRule struct {
	Indicator  string      `yaml:"indicator,omitempty"`
	Labels     []string    `yaml:"labels,omitempty"`
	Volatility string      `yaml:"volatility,omitempty"`
	LevelAbove *float64    `yaml:"level_above,omitempty"`
	LevelBelow *float64    `yaml:"level_below,omitempty"`
	Requires   []Condition `yaml:"requires,omitempty"`
	Mood       string      `yaml:"mood,omitempty"` // matches composite sentiment instead of a label
	Text       string      `yaml:"text"`           // {indicator} expands to the display name
}

// Table is the full rule configuration: the indicator catalog (fetch order),
// per-indicator thresholds, both rule tables, and the sentiment vote setup.
type Table struct {
	Indicators    []models.Indicator      `yaml:"indicators"`
	Thresholds    map[string]ThresholdSet `yaml:"thresholds"`
	SignalRules   []SignalRule            `yaml:"signal_rules"`
	ForecastRules []ForecastRule          `yaml:"forecast_rules"`
	SentimentKeys []string                `yaml:"sentiment_keys"`
	MaxForecasts  int                     `yaml:"max_forecasts"`
}

// Thresholds fall back to the catalog-wide default when an indicator has no entry.
var defaultThresholds = ThresholdSet{DeltaStrong: 0.1, DeltaMild: 0.01}

// ThresholdsFor returns the threshold set for a series id.
func (t *Table) ThresholdsFor(id string) ThresholdSet {
	if ts, ok := t.Thresholds[id]; ok {
		return ts
	}
	return defaultThresholds
}

// Indicator looks up a catalog entry by series id.
func (t *Table) Indicator(id string) (models.Indicator, bool) {
	for _, ind := range t.Indicators {
		if ind.ID == id {
			return ind, true
		}
	}
	return models.Indicator{}, false
}

func (t *Table) validate() error {
	if len(t.Indicators) == 0 {
		return fmt.Errorf("rules: empty indicator catalog")
	}
	seen := make(map[string]bool, len(t.Indicators))
	for _, ind := range t.Indicators {
		if ind.ID == "" {
			return fmt.Errorf("rules: indicator with empty id")
		}
		if seen[ind.ID] {
			return fmt.Errorf("rules: duplicate indicator %s", ind.ID)
		}
		seen[ind.ID] = true
	}
	for i, r := range t.SignalRules {
		if r.Direction != string(models.SignalBuy) && r.Direction != string(models.SignalSell) {
			return fmt.Errorf("rules: signal rule %d (%s): bad direction %q", i, r.Name, r.Direction)
		}
		if len(r.When) == 0 {
			return fmt.Errorf("rules: signal rule %d (%s): no conditions", i, r.Name)
		}
		for _, c := range r.When {
			if !seen[c.Indicator] {
				return fmt.Errorf("rules: signal rule %d (%s): unknown indicator %s", i, r.Name, c.Indicator)
			}
		}
	}
	for i, r := range t.ForecastRules {
		if r.Text == "" {
			return fmt.Errorf("rules: forecast rule %d: empty text", i)
		}
		if r.Indicator != "" && !seen[r.Indicator] {
			return fmt.Errorf("rules: forecast rule %d: unknown indicator %s", i, r.Indicator)
		}
	}
	for _, k := range t.SentimentKeys {
		if !seen[k] {
			return fmt.Errorf("rules: sentiment key %s not in catalog", k)
		}
	}
	return nil
}

// Load reads a rule table from a YAML file. An empty path yields the
// compiled-in defaults. Absent sections fall back to their defaults so a
// partial file can override just the thresholds.
func Load(path string) (*Table, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	var override Table
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("rules: parse %s: %w", path, err)
	}
	if len(override.Indicators) > 0 {
		t.Indicators = override.Indicators
	}
	if len(override.Thresholds) > 0 {
		t.Thresholds = override.Thresholds
	}
	if len(override.SignalRules) > 0 {
		t.SignalRules = override.SignalRules
	}
	if len(override.ForecastRules) > 0 {
		t.ForecastRules = override.ForecastRules
	}
	if len(override.SentimentKeys) > 0 {
		t.SentimentKeys = override.SentimentKeys
	}
	if override.MaxForecasts > 0 {
		t.MaxForecasts = override.MaxForecasts
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}
