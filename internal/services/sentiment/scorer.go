package sentiment

import (
	"MacroPull/internal/domain/models"
	domsvc "MacroPull/internal/domain/service"
	"MacroPull/internal/rules"
)

// Scorer votes the key indicators by polarity. A rising bullish indicator or
// a falling bearish one is a positive vote; everything else with a usable
// delta votes negative. Indicators without a prior observation abstain.
type Scorer struct {
	table *rules.Table
}

func NewScorer(table *rules.Table) *Scorer {
	return &Scorer{table: table}
}

func (s *Scorer) Score(cs []models.Classification) models.Sentiment {
	byID := make(map[string]models.Classification, len(cs))
	for _, c := range cs {
		byID[c.Indicator.ID] = c
	}

	var pos, neg int
	for _, key := range s.table.SentimentKeys {
		cl, ok := byID[key]
		if !ok || !cl.HasPrior {
			continue
		}
		up := cl.Label.Rising()
		bullish := cl.Indicator.Polarity == models.PolarityBullish
		if up == bullish {
			pos++
		} else {
			neg++
		}
	}

	out := models.Sentiment{PositiveVotes: pos, NegativeVotes: neg}
	total := pos + neg
	if total == 0 {
		out.Mood = models.MoodUncertain
		out.Risk = models.RiskMedium
		return out
	}

	ratio := float64(pos) / float64(total)
	switch {
	case ratio >= 0.7:
		out.Mood = models.MoodPositive
		out.Risk = models.RiskLow
	case ratio >= 0.4:
		out.Mood = models.MoodNeutral
		out.Risk = models.RiskMedium
	default:
		out.Mood = models.MoodNegative
		out.Risk = models.RiskHigh
	}
	return out
}

var _ domsvc.SentimentScorer = (*Scorer)(nil)
