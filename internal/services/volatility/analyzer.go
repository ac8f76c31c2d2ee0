package volatility

import (
	"math"

	"MacroPull/internal/domain/models"
	domsvc "MacroPull/internal/domain/service"
)

// minObservations is the smallest window that gives a meaningful dispersion read.
const minObservations = 10

// Analyzer buckets the standard deviation of period-over-period percent
// changes. Strict greater-than cutoffs; a value exactly on a cutoff lands in
// the lower bucket.
type Analyzer struct {
	high   float64
	medium float64
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{high: 0.1, medium: 0.05}
}

func (a *Analyzer) Analyze(obs []models.Observation) models.VolatilityLevel {
	if len(obs) < minObservations {
		return models.VolUnknown
	}

	changes := make([]float64, 0, len(obs)-1)
	for i := 1; i < len(obs); i++ {
		prev := obs[i-1].Value
		if prev == 0 {
			continue
		}
		changes = append(changes, (obs[i].Value-prev)/prev)
	}
	if len(changes) < 2 {
		return models.VolUnknown
	}

	sd := stddev(changes)
	switch {
	case sd > a.high:
		return models.VolHigh
	case sd > a.medium:
		return models.VolMedium
	default:
		return models.VolLow
	}
}

func stddev(xs []float64) float64 {
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	// sample deviation, matching the usual series convention
	return math.Sqrt(ss / float64(len(xs)-1))
}

var _ domsvc.VolatilityAnalyzer = (*Analyzer)(nil)
