package trend

import (
	"errors"
	"fmt"

	"MacroPull/internal/domain/models"
	domsvc "MacroPull/internal/domain/service"
	"MacroPull/internal/rules"
)

// ErrMissingData marks a classify call with zero observations. Callers are
// expected to filter empty series out before classification.
var ErrMissingData = errors.New("trend: no observations")

// Classifier buckets the latest move of a series into a trend label using
// per-indicator thresholds. Pure and stateless apart from the rule table.
type Classifier struct {
	table *rules.Table
	vol   domsvc.VolatilityAnalyzer
}

func NewClassifier(table *rules.Table, vol domsvc.VolatilityAnalyzer) *Classifier {
	return &Classifier{table: table, vol: vol}
}

// Classify maps observations (oldest first) onto a Classification.
// One observation classifies on level bands, two or more on the delta of the
// latest pair. Every comparison is strict greater-than, so a delta exactly on
// a threshold falls into the less extreme bucket.
func (c *Classifier) Classify(ind models.Indicator, obs []models.Observation) (models.Classification, error) {
	if len(obs) == 0 {
		return models.Classification{}, fmt.Errorf("%w: %s", ErrMissingData, ind.ID)
	}

	latest := obs[len(obs)-1]
	cl := models.Classification{
		Indicator:   ind,
		LatestValue: latest.Value,
		LatestDate:  latest.Date,
		Volatility:  models.VolUnknown,
	}
	if c.vol != nil {
		cl.Volatility = c.vol.Analyze(obs)
	}

	ts := c.table.ThresholdsFor(ind.ID)
	if len(obs) == 1 {
		cl.Label = labelFromLevel(latest.Value, ts)
		return cl, nil
	}

	cl.Delta = latest.Value - obs[len(obs)-2].Value
	cl.HasPrior = true
	cl.Label = labelFromDelta(cl.Delta, ts)
	return cl, nil
}

func labelFromDelta(delta float64, ts rules.ThresholdSet) models.TrendLabel {
	switch {
	case delta > ts.DeltaStrong:
		return models.TrendStrongRise
	case delta > ts.DeltaMild:
		return models.TrendMildRise
	case -delta > ts.StrongDown():
		return models.TrendStrongFall
	case -delta > ts.MildDown():
		return models.TrendMildFall
	default:
		return models.TrendFlat
	}
}

func labelFromLevel(value float64, ts rules.ThresholdSet) models.TrendLabel {
	if !ts.Banded() {
		return models.TrendFlat
	}
	switch {
	case value > ts.LevelHigh:
		return models.TrendStrongRise
	case value < ts.LevelLow:
		return models.TrendStrongFall
	default:
		return models.TrendFlat
	}
}

var _ domsvc.TrendClassifier = (*Classifier)(nil)
