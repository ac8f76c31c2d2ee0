package forecast

import (
	"strings"

	"MacroPull/internal/domain/models"
	domsvc "MacroPull/internal/domain/service"
	"MacroPull/internal/rules"
)

// Generator walks the forecast rule table in order. Wildcard rules (no
// indicator, no mood) award at most one note per indicator, first match
// wins, preserving classification input order. Targeted and mood rules fire
// whenever they match. No matching rule means no note. Output is capped at
// the table's MaxForecasts.
type Generator struct {
	table  *rules.Table
	scorer domsvc.SentimentScorer
}

func NewGenerator(table *rules.Table, scorer domsvc.SentimentScorer) *Generator {
	return &Generator{table: table, scorer: scorer}
}

func (g *Generator) Generate(cs []models.Classification) []models.ForecastNote {
	byID := make(map[string]models.Classification, len(cs))
	for _, c := range cs {
		byID[c.Indicator.ID] = c
	}

	var mood models.Mood
	if g.scorer != nil {
		mood = g.scorer.Score(cs).Mood
	}

	noted := make(map[string]bool) // indicators already covered by a wildcard rule
	var out []models.ForecastNote
	for _, rule := range g.table.ForecastRules {
		switch {
		case rule.Mood != "":
			if models.Mood(rule.Mood) == mood {
				out = append(out, models.ForecastNote{Text: rule.Text})
			}
		case rule.Indicator != "":
			cl, ok := byID[rule.Indicator]
			if ok && g.matches(rule, cl, byID) {
				out = append(out, render(rule, cl))
			}
		default:
			for _, cl := range cs {
				if noted[cl.Indicator.ID] || !g.matches(rule, cl, byID) {
					continue
				}
				noted[cl.Indicator.ID] = true
				out = append(out, render(rule, cl))
			}
		}
	}

	if max := g.table.MaxForecasts; max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

func (g *Generator) matches(rule rules.ForecastRule, cl models.Classification, byID map[string]models.Classification) bool {
	if len(rule.Labels) > 0 {
		hit := false
		for _, l := range rule.Labels {
			if models.TrendLabel(l) == cl.Label {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if rule.Volatility != "" && models.VolatilityLevel(rule.Volatility) != cl.Volatility {
		return false
	}
	if rule.LevelAbove != nil && !(cl.LatestValue > *rule.LevelAbove) {
		return false
	}
	if rule.LevelBelow != nil && !(cl.LatestValue < *rule.LevelBelow) {
		return false
	}
	for _, cond := range rule.Requires {
		other, ok := byID[cond.Indicator]
		if !ok || !cond.Matches(other) {
			return false
		}
	}
	return true
}

func render(rule rules.ForecastRule, cl models.Classification) models.ForecastNote {
	return models.ForecastNote{
		IndicatorID: cl.Indicator.ID,
		Text:        strings.ReplaceAll(rule.Text, "{indicator}", cl.Indicator.Name),
	}
}

var _ domsvc.ForecastGenerator = (*Generator)(nil)
