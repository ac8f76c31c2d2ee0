package models

import "time"

// TrendLabel is the closed set of trend classifications.
type TrendLabel string

const (
	TrendStrongRise TrendLabel = "strong_rise"
	TrendMildRise   TrendLabel = "mild_rise"
	TrendFlat       TrendLabel = "flat"
	TrendMildFall   TrendLabel = "mild_fall"
	TrendStrongFall TrendLabel = "strong_fall"
)

// Rising reports whether the label describes an upward move.
func (l TrendLabel) Rising() bool {
	return l == TrendStrongRise || l == TrendMildRise
}

// Falling reports whether the label describes a downward move.
func (l TrendLabel) Falling() bool {
	return l == TrendStrongFall || l == TrendMildFall
}

// VolatilityLevel buckets the dispersion of recent percent changes.
type VolatilityLevel string

const (
	VolUnknown VolatilityLevel = "unknown" // not enough observations
	VolLow     VolatilityLevel = "low"
	VolMedium  VolatilityLevel = "medium"
	VolHigh    VolatilityLevel = "high"
)

// Classification is the derived qualitative state of one indicator for a run.
// Computed fresh each run; never persisted.
type Classification struct {
	Indicator   Indicator       `json:"indicator"`
	Label       TrendLabel      `json:"label"`
	LatestValue float64         `json:"latest_value"`
	LatestDate  time.Time       `json:"latest_date"`
	Delta       float64         `json:"delta"`     // latest minus prior, 0 when HasPrior is false
	HasPrior    bool            `json:"has_prior"` // a second observation enabled a delta label
	Volatility  VolatilityLevel `json:"volatility"`
}

// SignalDirection is a directional advisory side.
type SignalDirection string

const (
	SignalBuy  SignalDirection = "buy"
	SignalSell SignalDirection = "sell"
)

// Signal is a directional advisory produced by rule evaluation.
// Signals are purely additive; opposing signals may coexist.
type Signal struct {
	Direction  SignalDirection `json:"direction"`
	Rationale  string          `json:"rationale"`
	Indicators []string        `json:"indicators"` // originating indicator ids
}

// ForecastNote is a static, non-directional advisory tied to one indicator.
type ForecastNote struct {
	IndicatorID string `json:"indicator_id"`
	Text        string `json:"text"`
}

// Mood is the composite market read across key indicators.
type Mood string

const (
	MoodPositive  Mood = "positive"
	MoodNeutral   Mood = "neutral"
	MoodNegative  Mood = "negative"
	MoodUncertain Mood = "uncertain" // no key indicator had a usable delta
)

// RiskLevel accompanies the sentiment read.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Sentiment is the polarity-weighted vote over key indicators.
type Sentiment struct {
	Mood          Mood      `json:"mood"`
	Risk          RiskLevel `json:"risk"`
	PositiveVotes int       `json:"positive_votes"`
	NegativeVotes int       `json:"negative_votes"`
}

// AnalysisBundle is the complete output of one analysis run.
type AnalysisBundle struct {
	GeneratedAt     time.Time        `json:"generated_at"`
	Classifications []Classification `json:"classifications"`
	Sentiment       Sentiment        `json:"sentiment"`
	Signals         []Signal         `json:"signals"`
	Forecasts       []ForecastNote   `json:"forecasts"`
	Unavailable     []string         `json:"unavailable"` // indicator ids whose fetch failed
}

// Classification returns the classification for an indicator id, if present.
func (b *AnalysisBundle) Classification(id string) (Classification, bool) {
	for _, c := range b.Classifications {
		if c.Indicator.ID == id {
			return c, true
		}
	}
	return Classification{}, false
}
