package extract

import (
	"regexp"
	"strings"

	"portfolio_insight/pkg/core/numeric"
	"portfolio_insight/pkg/models"
)

// periodPattern matches one named return period followed by a percentage
// somewhere close on the same line.
type periodPattern struct {
	re     *regexp.Regexp
	assign func(*models.PerformanceMetrics, *float64)
}

func periodRe(synonyms ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)(?:` + strings.Join(synonyms, "|") + `)[^%\n]{0,40}?(-?\d+(?:[.,]\d+)?)\s*%`)
}

var periodPatterns = []periodPattern{
	{periodRe(`ytd`, `year[\s\-]?to[\s\-]?date`), func(m *models.PerformanceMetrics, v *float64) { m.YTD = v }},
	{periodRe(`1[\s\-]?month`, `one[\s\-]?month`, `\b1m\b`), func(m *models.PerformanceMetrics, v *float64) { m.OneMonth = v }},
	{periodRe(`3[\s\-]?month`, `three[\s\-]?month`, `\b3m\b`), func(m *models.PerformanceMetrics, v *float64) { m.ThreeMonth = v }},
	{periodRe(`6[\s\-]?month`, `six[\s\-]?month`, `\b6m\b`), func(m *models.PerformanceMetrics, v *float64) { m.SixMonth = v }},
	{periodRe(`1[\s\-]?year`, `one[\s\-]?year`, `\b1y\b`, `\b1[\s\-]?yr\b`), func(m *models.PerformanceMetrics, v *float64) { m.OneYear = v }},
	{periodRe(`3[\s\-]?year`, `three[\s\-]?year`, `\b3y\b`, `\b3[\s\-]?yr\b`), func(m *models.PerformanceMetrics, v *float64) { m.ThreeYear = v }},
	{periodRe(`5[\s\-]?year`, `five[\s\-]?year`, `\b5y\b`, `\b5[\s\-]?yr\b`), func(m *models.PerformanceMetrics, v *float64) { m.FiveYear = v }},
	{periodRe(`10[\s\-]?year`, `ten[\s\-]?year`, `\b10y\b`, `\b10[\s\-]?yr\b`), func(m *models.PerformanceMetrics, v *float64) { m.TenYear = v }},
	{periodRe(`since[\s\-]?inception`, `inception`), func(m *models.PerformanceMetrics, v *float64) { m.SinceInception = v }},
}

// ExtractPerformance pulls period returns from the text and from performance
// tables. Unmatched periods stay nil; a period is never filled with zero
// unless the source states zero.
func ExtractPerformance(text string, tbls []models.Table) models.PerformanceMetrics {
	var metrics models.PerformanceMetrics

	corpus := text
	for i := range tbls {
		corpus += "\n" + flattenPerformanceTable(&tbls[i])
	}

	for _, pp := range periodPatterns {
		if m := pp.re.FindStringSubmatch(corpus); m != nil {
			pp.assign(&metrics, numeric.ParsePercent(m[1]))
		}
	}
	return metrics
}

// flattenPerformanceTable renders a performance-looking table as "label
// value%" lines so the same period patterns apply. Other tables flatten to
// nothing.
func flattenPerformanceTable(t *models.Table) string {
	joined := strings.ToLower(t.Title + " " + strings.Join(t.Headers, " "))
	if !strings.Contains(joined, "performance") && !strings.Contains(joined, "return") {
		return ""
	}

	var b strings.Builder
	// Two shapes occur: periods as rows (label, value) or periods as the
	// header row with a single value row beneath.
	for _, row := range t.Rows {
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	if len(t.Rows) == 1 && len(t.Headers) == len(t.Rows[0]) {
		for i, h := range t.Headers {
			b.WriteString(h)
			b.WriteByte(' ')
			b.WriteString(t.Rows[0][i])
			b.WriteByte('\n')
		}
	}
	return b.String()
}
