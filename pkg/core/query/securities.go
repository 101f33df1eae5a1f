package query

import (
	"fmt"
	"strings"

	"portfolio_insight/pkg/core/extract"
	"portfolio_insight/pkg/core/marketdata"
	"portfolio_insight/pkg/models"
)

func matchesSecurityLookup(q string) bool {
	return containsAny(q, "how many shares", "shares of", "price of", "value of my", "do i own", "do i hold", "position in")
}

var quoteProvider = marketdata.NewStubProvider()

// AnswerSecurities answers both shapes of securities question: a lookup of
// one named security when the question mentions one, otherwise the holdings
// list ordered by value.
func AnswerSecurities(in Input, q string) string {
	secs := in.Data.Securities
	if len(secs) == 0 {
		return "No securities were identified in this document."
	}

	if sec := ResolveSecurityName(q, secs); sec != nil {
		return describeSecurity(sec, in.Data.PortfolioInfo.Currency, q)
	}

	currency := in.Data.PortfolioInfo.Currency
	sorted := extract.SortSecuritiesByValue(secs)

	var b strings.Builder
	fmt.Fprintf(&b, "The portfolio holds %d securit(ies):\n", len(sorted))
	for i, sec := range sorted {
		fmt.Fprintf(&b, "%d. %s", i+1, sec.Name)
		if sec.ISIN != "" {
			fmt.Fprintf(&b, " (%s)", sec.ISIN)
		}
		fmt.Fprintf(&b, " - value %s", FormatAmount(sec.Value, secCurrency(&sec, currency)))
		if sec.Percentage != nil {
			fmt.Fprintf(&b, ", %s of portfolio", FormatPercent(sec.Percentage))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func secCurrency(sec *models.Security, fallback string) string {
	if sec.Currency != "" {
		return sec.Currency
	}
	return fallback
}

// describeSecurity renders the known fields of one holding; a hypothetical
// simulated quote is added only when the question asks about current price.
func describeSecurity(sec *models.Security, portfolioCurrency, q string) string {
	currency := secCurrency(sec, portfolioCurrency)

	var b strings.Builder
	fmt.Fprintf(&b, "%s", sec.Name)
	if sec.ISIN != "" {
		fmt.Fprintf(&b, " (ISIN %s)", sec.ISIN)
	}
	b.WriteString(":\n")
	if sec.Type != "" {
		fmt.Fprintf(&b, "- Type: %s\n", sec.Type)
	}
	fmt.Fprintf(&b, "- Quantity: %s\n", formatQuantity(sec.Quantity))
	fmt.Fprintf(&b, "- Price: %s\n", FormatAmount(sec.Price, currency))
	fmt.Fprintf(&b, "- Value: %s\n", FormatAmount(sec.Value, currency))
	fmt.Fprintf(&b, "- Portfolio weight: %s", FormatPercent(sec.Percentage))

	if containsAny(q, "current price", "today", "right now", "market price") {
		quote := quoteProvider.GetQuote(sec.Key())
		fmt.Fprintf(&b, "\n- Simulated current price: %s (not live market data)",
			FormatAmount(&quote.Price, quote.Currency))
	}
	return b.String()
}

func formatQuantity(q *float64) string {
	if q == nil {
		return "N/A"
	}
	if *q == float64(int64(*q)) {
		return fmt.Sprintf("%d", int64(*q))
	}
	return fmt.Sprintf("%.4f", *q)
}
