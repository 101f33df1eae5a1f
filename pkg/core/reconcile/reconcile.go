// Package reconcile cross-checks the itemized security values against the
// declared portfolio total. The outcome is a diagnostic quality flag and is
// never used to block result delivery.
package reconcile

import (
	"log"

	"github.com/shopspring/decimal"

	"portfolio_insight/pkg/models"
)

// Reconciliation thresholds: strict is the quality bar, relaxed tolerates
// statements that itemize only the main positions.
const (
	StrictTolerancePct  = 1.0
	RelaxedTolerancePct = 10.0
)

// Mode selects the tolerance applied by Check.
type Mode string

const (
	ModeStrict  Mode = "strict"
	ModeRelaxed Mode = "relaxed"
)

// DefaultRates is the built-in USD-relative conversion table. It is a known
// simplification inherited from the statement domain; deployments override it
// from config/rates.hjson.
var DefaultRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.08,
	"GBP": 1.27,
	"CHF": 1.11,
	"JPY": 0.0067,
	"CAD": 0.73,
	"AUD": 0.66,
}

// Checker reconciles extraction results against a rate table.
type Checker struct {
	rates map[string]float64
	mode  Mode
}

// NewChecker builds a Checker; nil rates fall back to DefaultRates.
func NewChecker(rates map[string]float64, mode Mode) *Checker {
	if len(rates) == 0 {
		rates = DefaultRates
	}
	if mode != ModeRelaxed {
		mode = ModeStrict
	}
	return &Checker{rates: rates, mode: mode}
}

// Check sums every security value (converted into the portfolio currency when
// the security carries a different one) and compares the sum against the
// declared total. Sums run on decimals so the diagnostic itself cannot drift.
func (c *Checker) Check(data *models.FinancialData) models.ReconciliationReport {
	report := models.ReconciliationReport{
		Mode:     string(c.mode),
		Currency: data.PortfolioInfo.Currency,
	}
	if report.Currency == "" {
		report.Currency = "USD"
	}

	sum := decimal.Zero
	for i := range data.Securities {
		sec := &data.Securities[i]
		if sec.Value == nil {
			continue
		}
		v := decimal.NewFromFloat(*sec.Value)
		if sec.Currency != "" && sec.Currency != report.Currency {
			converted, ok := c.convert(v, sec.Currency, report.Currency)
			v = converted
			if ok {
				report.Converted = true
			}
		}
		sum = sum.Add(v)
	}
	report.SecuritiesTotal, _ = sum.Round(2).Float64()

	if data.PortfolioInfo.TotalValue == nil || *data.PortfolioInfo.TotalValue == 0 {
		// Nothing declared to reconcile against.
		return report
	}
	report.DeclaredTotal = *data.PortfolioInfo.TotalValue

	declared := decimal.NewFromFloat(report.DeclaredTotal)
	diffPct := sum.Sub(declared).Div(declared).Mul(decimal.NewFromInt(100)).Abs()
	report.PercentDiff, _ = diffPct.Round(4).Float64()

	tolerance := StrictTolerancePct
	if c.mode == ModeRelaxed {
		tolerance = RelaxedTolerancePct
	}
	report.Reconciled = report.PercentDiff < tolerance

	if !report.Reconciled {
		log.Printf("[Reconcile] mismatch: securities %.2f vs declared %.2f (%.2f%% diff, %s mode)",
			report.SecuritiesTotal, report.DeclaredTotal, report.PercentDiff, c.mode)
	}
	return report
}

// convert moves an amount between currencies through the USD-relative table.
// Unknown currencies pass through unconverted, reported by the false return.
func (c *Checker) convert(v decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	fromRate, okFrom := c.rates[from]
	toRate, okTo := c.rates[to]
	if !okFrom || !okTo || toRate == 0 {
		log.Printf("[Reconcile] no rate for %s->%s, passing through", from, to)
		return v, false
	}
	return v.Mul(decimal.NewFromFloat(fromRate)).Div(decimal.NewFromFloat(toRate)), true
}
