package service

import (
	"MacroPull/internal/domain/models"
)

// TrendClassifier maps an indicator's recent observations onto a trend label.
// Pure per indicator; returns trend.ErrMissingData when obs is empty.
type TrendClassifier interface {
	Classify(ind models.Indicator, obs []models.Observation) (models.Classification, error)
}

// VolatilityAnalyzer buckets the dispersion of recent percent changes.
type VolatilityAnalyzer interface {
	Analyze(obs []models.Observation) models.VolatilityLevel
}

// SignalGenerator evaluates the signal rule table against a set of
// classifications. Output order follows rule order.
type SignalGenerator interface {
	Generate(cs []models.Classification) []models.Signal
}

// ForecastGenerator emits static forecast notes keyed on classifications.
type ForecastGenerator interface {
	Generate(cs []models.Classification) []models.ForecastNote
}

// SentimentScorer votes key indicators by polarity into a composite mood.
type SentimentScorer interface {
	Score(cs []models.Classification) models.Sentiment
}
