package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"MacroPull/internal/domain/models"
	"MacroPull/pkg/util"
)

const lineWidth = 80

// Assembler renders an analysis bundle as a plain-text report and writes it
// to a dated file under the configured output directory.
type Assembler struct {
	outputDir  string
	filePrefix string
}

func NewAssembler(outputDir, filePrefix string) *Assembler {
	return &Assembler{outputDir: outputDir, filePrefix: filePrefix}
}

// Build renders the full report text.
func (a *Assembler) Build(b *models.AnalysisBundle) string {
	var sb strings.Builder
	rule := strings.Repeat("=", lineWidth)
	sep := strings.Repeat("-", 50)

	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}

	line(rule)
	line("US ECONOMIC DATA ANALYSIS REPORT")
	line(rule)
	line("Date: %s", b.GeneratedAt.Format("2006-01-02 15:04:05"))
	line("")

	line("CURRENT ECONOMIC INDICATORS")
	line(sep)
	for _, c := range b.Classifications {
		line("%s: %.2f (%s) - %s", c.Indicator.Name, c.LatestValue,
			c.LatestDate.Format(util.FREDDate), labelText(c.Label))
	}
	if len(b.Unavailable) > 0 {
		line("")
		line("Unavailable this run: %s", strings.Join(b.Unavailable, ", "))
	}
	line("")

	line("MARKET SENTIMENT")
	line(sep)
	line("Overall: %s (%d up / %d down votes)", moodText(b.Sentiment.Mood),
		b.Sentiment.PositiveVotes, b.Sentiment.NegativeVotes)
	line("Risk level: %s", riskText(b.Sentiment.Risk))
	line("")

	line("BUY/SELL SIGNALS")
	line(sep)
	if len(b.Signals) == 0 {
		line("- WAIT: no clear signal, stay cautious")
	}
	for _, s := range b.Signals {
		line("- %s: %s", strings.ToUpper(string(s.Direction)), s.Rationale)
	}
	line("")

	line("FORECASTS FOR TOMORROW")
	line(sep)
	if len(b.Forecasts) == 0 {
		line("- No clear forecast from current data, keep watching the tape")
	}
	for _, f := range b.Forecasts {
		line("- %s", f.Text)
	}
	line("")

	line("STRATEGY RECOMMENDATIONS")
	line(sep)
	for _, r := range recommendations(b.Sentiment.Risk) {
		line("- %s", r)
	}
	line("")
	line(rule)
	line("Analysis complete.")
	line(rule)

	return sb.String()
}

// Write renders the report and stores it as <prefix>_YYYYMMDD.txt.
// Returns the written path.
func (a *Assembler) Write(b *models.AnalysisBundle) (string, error) {
	text := a.Build(b)
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("report dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.txt", a.filePrefix, util.DateStamp(b.GeneratedAt))
	path := filepath.Join(a.outputDir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func labelText(l models.TrendLabel) string {
	switch l {
	case models.TrendStrongRise:
		return "Strong Rise"
	case models.TrendMildRise:
		return "Mild Rise"
	case models.TrendMildFall:
		return "Mild Fall"
	case models.TrendStrongFall:
		return "Strong Fall"
	default:
		return "Stable"
	}
}

func moodText(m models.Mood) string {
	switch m {
	case models.MoodPositive:
		return "Positive"
	case models.MoodNegative:
		return "Negative"
	case models.MoodNeutral:
		return "Neutral"
	default:
		return "Uncertain"
	}
}

func riskText(r models.RiskLevel) string {
	switch r {
	case models.RiskLow:
		return "Low Risk"
	case models.RiskHigh:
		return "High Risk"
	default:
		return "Medium Risk"
	}
}

func recommendations(r models.RiskLevel) []string {
	switch r {
	case models.RiskHigh:
		return []string{
			"High risk environment, reduce position sizes",
			"Consider hedge strategies",
			"Watch Fed communication closely",
		}
	case models.RiskLow:
		return []string{
			"Low risk environment, look for opportunities",
			"Apply trend-following strategies",
			"Position sizes can be increased",
		}
	default:
		return []string{
			"Balanced approach, keep monitoring macro data",
			"Combine with technical analysis",
			"Stay selective",
		}
	}
}
