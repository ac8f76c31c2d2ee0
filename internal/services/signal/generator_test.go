package signal

import (
	"testing"

	"MacroPull/internal/domain/models"
	"MacroPull/internal/rules"
)

func cls(id string, label models.TrendLabel) models.Classification {
	table := rules.Default()
	ind, _ := table.Indicator(id)
	return models.Classification{Indicator: ind, Label: label, HasPrior: true}
}

func TestGenerateMatchesRuleTableOrder(t *testing.T) {
	g := NewGenerator(rules.Default())
	// confidence surge comes before payrolls boom in the table
	out := g.Generate([]models.Classification{
		cls("PAYEMS", models.TrendStrongRise),
		cls("UMCSENT", models.TrendStrongRise),
	})
	if len(out) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(out))
	}
	if out[0].Indicators[0] != "UMCSENT" || out[1].Indicators[0] != "PAYEMS" {
		t.Fatalf("rule order not preserved: %+v", out)
	}
	for _, s := range out {
		if s.Direction != models.SignalBuy {
			t.Fatalf("unexpected direction %s", s.Direction)
		}
	}
}

func TestGenerateTwoIndicatorRule(t *testing.T) {
	g := NewGenerator(rules.Default())
	out := g.Generate([]models.Classification{
		cls("UNRATE", models.TrendMildFall),
		cls("CPIAUCSL", models.TrendStrongFall),
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(out))
	}
	if out[0].Direction != models.SignalBuy || len(out[0].Indicators) != 2 {
		t.Fatalf("unexpected signal %+v", out[0])
	}
}

func TestGenerateSkipsRulesWithAbsentIndicators(t *testing.T) {
	g := NewGenerator(rules.Default())
	// UNRATE falling alone must not fire the two-indicator rule
	out := g.Generate([]models.Classification{
		cls("UNRATE", models.TrendStrongFall),
	})
	if len(out) != 0 {
		t.Fatalf("expected no signals, got %+v", out)
	}
}

func TestGenerateOpposingSignalsCoexist(t *testing.T) {
	g := NewGenerator(rules.Default())
	out := g.Generate([]models.Classification{
		cls("FEDFUNDS", models.TrendStrongFall),
		cls("UMCSENT", models.TrendStrongFall),
	})
	if len(out) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(out))
	}
	if out[0].Direction != models.SignalBuy || out[1].Direction != models.SignalSell {
		t.Fatalf("expected buy then sell, got %+v", out)
	}
}

func TestGenerateEmptyInputEmptyOutput(t *testing.T) {
	g := NewGenerator(rules.Default())
	if out := g.Generate(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}

func TestGenerateIndicatorOmissionIsLocal(t *testing.T) {
	g := NewGenerator(rules.Default())
	with := g.Generate([]models.Classification{
		cls("FEDFUNDS", models.TrendStrongFall),
		cls("UMCSENT", models.TrendStrongRise),
	})
	without := g.Generate([]models.Classification{
		cls("UMCSENT", models.TrendStrongRise),
	})
	// dropping FEDFUNDS removes only its own signal
	if len(with) != 2 || len(without) != 1 {
		t.Fatalf("unexpected counts %d/%d", len(with), len(without))
	}
	if with[1].Rationale != without[0].Rationale {
		t.Fatalf("unrelated signal changed: %q vs %q", with[1].Rationale, without[0].Rationale)
	}
}
