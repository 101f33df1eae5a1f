// Package extract implements the per-domain extractors and the aggregator
// that turns raw statement text and detected tables into a FinancialData
// record.
package extract

import (
	"regexp"
	"strings"

	"portfolio_insight/pkg/core/numeric"
	"portfolio_insight/pkg/models"
)

// Anchored label patterns for document-level metadata. Each captures the
// value following the label on the same line.
var (
	dateRe = regexp.MustCompile(`(?i)(?:statement date|valuation date|as of|date)\s*[:\-]?\s*(\d{1,2}[./\-]\d{1,2}[./\-]\d{2,4}|\d{4}-\d{2}-\d{2}|(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4})`)

	totalValueRe = regexp.MustCompile(`(?i)(?:total\s+(?:portfolio\s+)?value|portfolio\s+(?:total|value)|total\s+assets|net\s+asset\s+value)\s*[:\-]?\s*(?:\(?[A-Z]{3}\)?\s*)?([$€£¥]?\s?[\d.,]+)`)

	ownerRe     = regexp.MustCompile(`(?i)(?:account\s+holder|client\s+name|client|owner|prepared\s+for)\s*[:\-]\s*([^\n]+)`)
	managerRe   = regexp.MustCompile(`(?i)(?:portfolio\s+manager|investment\s+manager|advisor|adviser|managed\s+by)\s*[:\-]\s*([^\n]+)`)
	accountRe   = regexp.MustCompile(`(?i)account\s*(?:number|no\.?|#)\s*[:\-]?\s*([A-Z0-9][A-Z0-9\-]{3,})`)
	custodianRe = regexp.MustCompile(`(?i)custodian\s*[:\-]\s*([^\n]+)`)
	benchmarkRe = regexp.MustCompile(`(?i)benchmark\s*[:\-]\s*([^\n]+)`)
	strategyRe  = regexp.MustCompile(`(?i)(?:investment\s+)?strategy\s*[:\-]\s*([^\n]+)`)

	isoCurrencyRe = regexp.MustCompile(`\b(USD|EUR|GBP|CHF|JPY|CAD|AUD|SEK|NOK|DKK)\b`)
)

var symbolCurrencies = []struct {
	symbol string
	code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
}

// ExtractPortfolioInfo pulls document-level metadata from the statement text,
// falling back to table captions for the declared total. Unresolved fields
// stay empty; nothing is guessed except the USD currency default.
func ExtractPortfolioInfo(text string, tbls []models.Table) models.PortfolioInfo {
	info := models.PortfolioInfo{Currency: detectCurrency(text)}

	info.Title = firstHeadingLine(text)
	if m := dateRe.FindStringSubmatch(text); m != nil {
		info.Date = strings.TrimSpace(m[1])
	}
	if m := totalValueRe.FindStringSubmatch(text); m != nil {
		info.TotalValue = numeric.ParseAmount(m[1])
	}
	if m := ownerRe.FindStringSubmatch(text); m != nil {
		info.Owner = trimFieldValue(m[1])
	}
	if m := managerRe.FindStringSubmatch(text); m != nil {
		info.Manager = trimFieldValue(m[1])
	}
	if m := accountRe.FindStringSubmatch(text); m != nil {
		info.AccountNumber = strings.TrimSpace(m[1])
	}
	if m := custodianRe.FindStringSubmatch(text); m != nil {
		info.Custodian = trimFieldValue(m[1])
	}
	if m := benchmarkRe.FindStringSubmatch(text); m != nil {
		info.Benchmark = trimFieldValue(m[1])
	}
	if m := strategyRe.FindStringSubmatch(text); m != nil {
		info.Strategy = trimFieldValue(m[1])
	}

	if info.TotalValue == nil {
		info.TotalValue = totalFromTables(tbls)
	}

	return info
}

// firstHeadingLine returns the first short non-empty line of the document,
// the usual place for a statement title.
func firstHeadingLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.Trim(line, "#* "))
		if line == "" {
			continue
		}
		if len(line) > 90 {
			return ""
		}
		return line
	}
	return ""
}

// totalFromTables scans table captions and rows for a declared portfolio
// total: a row whose label cell contains "total" or a table titled with
// "portfolio value".
func totalFromTables(tbls []models.Table) *float64 {
	for i := range tbls {
		t := &tbls[i]
		titled := strings.Contains(strings.ToLower(t.Title), "portfolio value")
		for _, row := range t.Rows {
			if len(row) < 2 {
				continue
			}
			label := strings.ToLower(row[0])
			if !titled && !strings.Contains(label, "total") {
				continue
			}
			// Last parseable cell in the row is the amount.
			for col := len(row) - 1; col >= 1; col-- {
				if v := numeric.ParseAmount(row[col]); v != nil && *v > 0 {
					return v
				}
			}
		}
	}
	return nil
}

// detectCurrency finds the statement currency from an ISO code or the first
// currency symbol; USD when neither appears.
func detectCurrency(text string) string {
	if m := isoCurrencyRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	for _, sc := range symbolCurrencies {
		if strings.Contains(text, sc.symbol) {
			return sc.code
		}
	}
	return "USD"
}

// trimFieldValue cleans a captured label value: surrounding whitespace and a
// trailing clause after two or more spaces (column leakage from layouts).
func trimFieldValue(v string) string {
	v = strings.TrimSpace(v)
	if idx := strings.Index(v, "  "); idx > 0 {
		v = v[:idx]
	}
	return strings.TrimRight(v, " .,•")
}
