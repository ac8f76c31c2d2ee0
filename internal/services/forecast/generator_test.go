package forecast

import (
	"strings"
	"testing"

	"MacroPull/internal/domain/models"
	"MacroPull/internal/rules"
	"MacroPull/internal/services/sentiment"
)

func cls(id string, label models.TrendLabel, vol models.VolatilityLevel) models.Classification {
	table := rules.Default()
	ind, _ := table.Indicator(id)
	return models.Classification{Indicator: ind, Label: label, Volatility: vol, HasPrior: true}
}

func newGenerator() *Generator {
	table := rules.Default()
	return NewGenerator(table, sentiment.NewScorer(table))
}

func TestGenerateNoMatchNoNote(t *testing.T) {
	g := newGenerator()
	out := g.Generate([]models.Classification{
		cls("DGS10", models.TrendFlat, models.VolLow),
	})
	if len(out) != 0 {
		t.Fatalf("expected no notes, got %+v", out)
	}
}

func TestGenerateWildcardOneNotePerIndicator(t *testing.T) {
	g := newGenerator()
	// strong rise with high volatility: only the first matching wildcard fires
	out := g.Generate([]models.Classification{
		cls("DGS10", models.TrendStrongRise, models.VolHigh),
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 note, got %+v", out)
	}
	if !strings.Contains(out[0].Text, "rise may continue") {
		t.Fatalf("unexpected note %q", out[0].Text)
	}
	if out[0].IndicatorID != "DGS10" {
		t.Fatalf("note not attributed: %+v", out[0])
	}
}

func TestGenerateExpandsIndicatorName(t *testing.T) {
	g := newGenerator()
	out := g.Generate([]models.Classification{
		cls("HOUST", models.TrendStrongFall, models.VolLow),
	})
	if len(out) != 1 || !strings.HasPrefix(out[0].Text, "Housing Starts:") {
		t.Fatalf("placeholder not expanded: %+v", out)
	}
}

func TestGenerateMoodNote(t *testing.T) {
	g := newGenerator()
	// all key votes positive -> positive mood note, no wildcard hits
	out := g.Generate([]models.Classification{
		cls("UNRATE", models.TrendMildFall, models.VolLow),
		cls("PAYEMS", models.TrendMildRise, models.VolLow),
	})
	if len(out) != 1 || !strings.Contains(out[0].Text, "positive momentum") {
		t.Fatalf("expected mood note, got %+v", out)
	}
	if out[0].IndicatorID != "" {
		t.Fatalf("mood note should not name an indicator: %+v", out[0])
	}
}

func TestGenerateStableRateContinuation(t *testing.T) {
	g := newGenerator()
	out := g.Generate([]models.Classification{
		cls("FEDFUNDS", models.TrendFlat, models.VolLow),
	})
	var hit bool
	for _, n := range out {
		if strings.Contains(n.Text, "continuation likely") && n.IndicatorID == "FEDFUNDS" {
			hit = true
		}
	}
	if !hit {
		t.Fatalf("expected continuation note for stable rate, got %+v", out)
	}
}

func TestGenerateFedPolicyRule(t *testing.T) {
	g := newGenerator()
	fed := cls("FEDFUNDS", models.TrendFlat, models.VolLow)
	fed.LatestValue = 5.25
	out := g.Generate([]models.Classification{
		fed,
		cls("CPIAUCSL", models.TrendMildFall, models.VolLow),
	})
	var hit bool
	for _, n := range out {
		if strings.Contains(n.Text, "rate cut signals") {
			hit = true
		}
	}
	if !hit {
		t.Fatalf("expected fed policy note, got %+v", out)
	}

	// exactly on the level gate stays silent
	fed.LatestValue = 4.5
	out = g.Generate([]models.Classification{
		fed,
		cls("CPIAUCSL", models.TrendMildFall, models.VolLow),
	})
	for _, n := range out {
		if strings.Contains(n.Text, "rate cut signals") {
			t.Fatalf("on-gate level fired the rule: %+v", out)
		}
	}
}

func TestGenerateCapsNotes(t *testing.T) {
	g := newGenerator()
	in := []models.Classification{
		cls("UNRATE", models.TrendStrongRise, models.VolLow),
		cls("CPIAUCSL", models.TrendStrongRise, models.VolLow),
		cls("GDPC1", models.TrendStrongRise, models.VolLow),
		cls("PAYEMS", models.TrendStrongFall, models.VolLow),
		cls("INDPRO", models.TrendStrongFall, models.VolLow),
		cls("HOUST", models.TrendStrongFall, models.VolLow),
		cls("DGS10", models.TrendFlat, models.VolHigh),
	}
	out := g.Generate(in)
	if len(out) != 5 {
		t.Fatalf("expected cap at 5 notes, got %d", len(out))
	}
}

func TestGenerateOrderFollowsRuleTable(t *testing.T) {
	g := newGenerator()
	out := g.Generate([]models.Classification{
		cls("DGS10", models.TrendFlat, models.VolHigh),      // volatility wildcard (3rd rule)
		cls("HOUST", models.TrendStrongRise, models.VolLow), // strong-rise wildcard (1st rule)
	})
	if len(out) != 2 {
		t.Fatalf("expected 2 notes, got %+v", out)
	}
	if out[0].IndicatorID != "HOUST" || out[1].IndicatorID != "DGS10" {
		t.Fatalf("rule order not preserved: %+v", out)
	}
}
