package models

import "time"

// Polarity states whether a rising value is bullish, bearish, or neither.
type Polarity string

const (
	PolarityBullish Polarity = "bullish"
	PolarityBearish Polarity = "bearish"
	PolarityNeutral Polarity = "neutral"
)

// Indicator identifies one tracked macroeconomic metric.
type Indicator struct {
	ID       string   `json:"id"`   // FRED series id, e.g. "UNRATE"
	Name     string   `json:"name"` // display name
	Unit     string   `json:"unit"`
	Polarity Polarity `json:"polarity"`
}

// Observation is a single dated value for an indicator. Immutable once fetched.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}
