package signal

import (
	"MacroPull/internal/domain/models"
	domsvc "MacroPull/internal/domain/service"
	"MacroPull/internal/rules"
)

// Generator evaluates the signal rule table against a classification set.
// Rules are independent; every matching rule contributes one signal and the
// output order is the table order. A rule referencing an indicator absent
// from the set is skipped.
type Generator struct {
	table *rules.Table
}

func NewGenerator(table *rules.Table) *Generator {
	return &Generator{table: table}
}

func (g *Generator) Generate(cs []models.Classification) []models.Signal {
	byID := make(map[string]models.Classification, len(cs))
	for _, c := range cs {
		byID[c.Indicator.ID] = c
	}

	var out []models.Signal
	for _, rule := range g.table.SignalRules {
		matched := true
		indicators := make([]string, 0, len(rule.When))
		for _, cond := range rule.When {
			cl, ok := byID[cond.Indicator]
			if !ok || !cond.Matches(cl) {
				matched = false
				break
			}
			indicators = append(indicators, cond.Indicator)
		}
		if !matched {
			continue
		}
		out = append(out, models.Signal{
			Direction:  models.SignalDirection(rule.Direction),
			Rationale:  rule.Rationale,
			Indicators: indicators,
		})
	}
	return out
}

var _ domsvc.SignalGenerator = (*Generator)(nil)
