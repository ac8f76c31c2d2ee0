package sentiment

import (
	"testing"

	"MacroPull/internal/domain/models"
	"MacroPull/internal/rules"
)

func cls(id string, label models.TrendLabel, hasPrior bool) models.Classification {
	table := rules.Default()
	ind, _ := table.Indicator(id)
	return models.Classification{Indicator: ind, Label: label, HasPrior: hasPrior}
}

func TestScoreUncertainWithoutVotes(t *testing.T) {
	s := NewScorer(rules.Default())
	out := s.Score(nil)
	if out.Mood != models.MoodUncertain || out.Risk != models.RiskMedium {
		t.Fatalf("empty input: got %+v", out)
	}
	// key indicators without a prior observation abstain
	out = s.Score([]models.Classification{cls("UNRATE", models.TrendFlat, false)})
	if out.Mood != models.MoodUncertain {
		t.Fatalf("abstaining votes: got %+v", out)
	}
}

func TestScorePolarity(t *testing.T) {
	s := NewScorer(rules.Default())
	// falling unemployment is good news, rising payrolls too
	out := s.Score([]models.Classification{
		cls("UNRATE", models.TrendMildFall, true),
		cls("PAYEMS", models.TrendMildRise, true),
	})
	if out.PositiveVotes != 2 || out.NegativeVotes != 0 {
		t.Fatalf("votes: %+v", out)
	}
	if out.Mood != models.MoodPositive || out.Risk != models.RiskLow {
		t.Fatalf("mood: %+v", out)
	}
}

func TestScoreFlatCountsAgainstBullish(t *testing.T) {
	s := NewScorer(rules.Default())
	// a stalled bullish indicator is not a positive vote
	out := s.Score([]models.Classification{cls("PAYEMS", models.TrendFlat, true)})
	if out.NegativeVotes != 1 || out.Mood != models.MoodNegative {
		t.Fatalf("flat bullish: %+v", out)
	}
	// a stalled bearish indicator reads as relief
	out = s.Score([]models.Classification{cls("CPIAUCSL", models.TrendFlat, true)})
	if out.PositiveVotes != 1 || out.Mood != models.MoodPositive {
		t.Fatalf("flat bearish: %+v", out)
	}
}

func TestScoreRatioCutoffs(t *testing.T) {
	s := NewScorer(rules.Default())
	// 2 of 4 positive -> exactly 0.5, neutral band
	out := s.Score([]models.Classification{
		cls("UNRATE", models.TrendMildFall, true),   // positive
		cls("PAYEMS", models.TrendMildRise, true),   // positive
		cls("CPIAUCSL", models.TrendMildRise, true), // negative
		cls("FEDFUNDS", models.TrendMildRise, true), // negative
	})
	if out.Mood != models.MoodNeutral || out.Risk != models.RiskMedium {
		t.Fatalf("0.5 ratio: %+v", out)
	}
	// 1 of 4 positive -> 0.25, negative band
	out = s.Score([]models.Classification{
		cls("UNRATE", models.TrendMildFall, true),
		cls("PAYEMS", models.TrendMildFall, true),
		cls("UMCSENT", models.TrendMildFall, true),
		cls("INDPRO", models.TrendMildFall, true),
	})
	if out.Mood != models.MoodNegative || out.Risk != models.RiskHigh {
		t.Fatalf("0.25 ratio: %+v", out)
	}
}

func TestScoreIgnoresNonKeyIndicators(t *testing.T) {
	s := NewScorer(rules.Default())
	out := s.Score([]models.Classification{
		cls("DGS10", models.TrendStrongRise, true),
		cls("HOUST", models.TrendStrongFall, true),
	})
	if out.PositiveVotes+out.NegativeVotes != 0 || out.Mood != models.MoodUncertain {
		t.Fatalf("non-key indicators voted: %+v", out)
	}
}
