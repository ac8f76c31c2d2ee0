package rules

import "MacroPull/internal/domain/models"

func f(v float64) *float64 { return &v }

// Default returns the built-in rule table. Catalog order is the fetch order.
func Default() *Table {
	return &Table{
		Indicators: []models.Indicator{
			{ID: "UNRATE", Name: "Unemployment Rate", Unit: "%", Polarity: models.PolarityBearish},
			{ID: "CPIAUCSL", Name: "Inflation (CPI)", Unit: "index", Polarity: models.PolarityBearish},
			{ID: "GDPC1", Name: "Real GDP", Unit: "bn 2017 USD", Polarity: models.PolarityBullish},
			{ID: "FEDFUNDS", Name: "Fed Funds Rate", Unit: "%", Polarity: models.PolarityBearish},
			{ID: "PAYEMS", Name: "Nonfarm Payrolls", Unit: "thousands", Polarity: models.PolarityBullish},
			{ID: "INDPRO", Name: "Industrial Production", Unit: "index", Polarity: models.PolarityBullish},
			{ID: "HOUST", Name: "Housing Starts", Unit: "thousands", Polarity: models.PolarityBullish},
			{ID: "UMCSENT", Name: "Consumer Sentiment", Unit: "index", Polarity: models.PolarityBullish},
			{ID: "DEXUSEU", Name: "USD/EUR Exchange Rate", Unit: "rate", Polarity: models.PolarityNeutral},
			{ID: "DGS10", Name: "10-Year Treasury Yield", Unit: "%", Polarity: models.PolarityNeutral},
			{ID: "MANEMP", Name: "Manufacturing Employment", Unit: "thousands", Polarity: models.PolarityBullish},
			{ID: "CIVPART", Name: "Labor Force Participation", Unit: "%", Polarity: models.PolarityBullish},
			{ID: "GPDI", Name: "Gross Private Investment", Unit: "bn USD", Polarity: models.PolarityBullish},
			{ID: "PCEC96", Name: "Real Personal Consumption", Unit: "bn 2017 USD", Polarity: models.PolarityBullish},
		},
		Thresholds: map[string]ThresholdSet{
			// Fed moves in quarter-point steps; a full step is a strong move.
			"FEDFUNDS": {DeltaStrong: 0.25, DeltaMild: 0.01, LevelHigh: 4.5, LevelLow: 1.0},
			// Sentiment index swings of five points mark a regime change.
			"UMCSENT": {DeltaStrong: 5, DeltaMild: 1, LevelHigh: 90, LevelLow: 60},
			// Payrolls: +200K is a strong print, any loss beyond 50K is a strong miss.
			"PAYEMS": {DeltaStrong: 200, DeltaMild: 25, DeltaStrongDown: 50},
			"UNRATE": {DeltaStrong: 0.3, DeltaMild: 0.1, LevelHigh: 6.0, LevelLow: 3.5},
			"DGS10":  {DeltaStrong: 0.25, DeltaMild: 0.05},
		},
		SignalRules: []SignalRule{
			{
				Name:      "fed-easing",
				Direction: "buy",
				When:      []Condition{{Indicator: "FEDFUNDS", Labels: []string{"strong_fall"}}},
				Rationale: "Fed rate cut, risk appetite may improve",
			},
			{
				Name:      "fed-tightening",
				Direction: "sell",
				When:      []Condition{{Indicator: "FEDFUNDS", Labels: []string{"strong_rise"}}},
				Rationale: "Fed rate hike, risk appetite may fade",
			},
			{
				Name:      "goldilocks",
				Direction: "buy",
				When: []Condition{
					{Indicator: "UNRATE", Labels: []string{"mild_fall", "strong_fall"}},
					{Indicator: "CPIAUCSL", Labels: []string{"mild_fall", "strong_fall"}},
				},
				Rationale: "Unemployment and inflation both falling, ideal macro backdrop",
			},
			{
				Name:      "stagflation",
				Direction: "sell",
				When: []Condition{
					{Indicator: "UNRATE", Labels: []string{"mild_rise", "strong_rise"}},
					{Indicator: "CPIAUCSL", Labels: []string{"mild_rise", "strong_rise"}},
				},
				Rationale: "Stagflation risk, unemployment and inflation rising together",
			},
			{
				Name:      "confidence-surge",
				Direction: "buy",
				When:      []Condition{{Indicator: "UMCSENT", Labels: []string{"strong_rise"}}},
				Rationale: "Consumer confidence surging",
			},
			{
				Name:      "confidence-slide",
				Direction: "sell",
				When:      []Condition{{Indicator: "UMCSENT", Labels: []string{"strong_fall"}}},
				Rationale: "Consumer confidence weakening",
			},
			{
				Name:      "payrolls-boom",
				Direction: "buy",
				When:      []Condition{{Indicator: "PAYEMS", Labels: []string{"strong_rise"}}},
				Rationale: "Strong payroll growth",
			},
			{
				Name:      "payrolls-loss",
				Direction: "sell",
				When:      []Condition{{Indicator: "PAYEMS", Labels: []string{"strong_fall"}}},
				Rationale: "Job losses",
			},
		},
		ForecastRules: []ForecastRule{
			{Labels: []string{"strong_rise"}, Text: "{indicator}: rise may continue"},
			{Labels: []string{"strong_fall"}, Text: "{indicator}: fall may continue"},
			{Volatility: "high", Text: "{indicator}: elevated volatility expected"},
			{Mood: "positive", Text: "Overall outlook: positive momentum may persist"},
			{Mood: "negative", Text: "Overall outlook: negative pressure may persist"},
			{
				Indicator: "FEDFUNDS",
				Labels:    []string{"flat"},
				Text:      "Fed outlook: policy rate expected to hold, continuation likely",
			},
			{
				Indicator:  "FEDFUNDS",
				LevelAbove: f(4.5),
				Requires:   []Condition{{Indicator: "CPIAUCSL", Labels: []string{"mild_fall", "strong_fall"}}},
				Text:       "Fed outlook: rate cut signals may strengthen",
			},
			{
				Indicator:  "FEDFUNDS",
				LevelBelow: f(3.0),
				Requires:   []Condition{{Indicator: "CPIAUCSL", Labels: []string{"mild_rise", "strong_rise"}}},
				Text:       "Fed outlook: rate hike expectations may build",
			},
		},
		SentimentKeys: []string{"UNRATE", "CPIAUCSL", "FEDFUNDS", "PAYEMS", "UMCSENT", "INDPRO"},
		MaxForecasts:  5,
	}
}
