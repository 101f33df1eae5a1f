// Package query answers free-text questions against an extracted
// FinancialData record via ordered keyword-intent matching. Handlers are pure
// functions: the same question and data always produce the same answer.
package query

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

// FormatAmount renders an amount in the statement currency with thousands
// separators and two decimals ("$59,000.00"). Nil renders as "N/A".
func FormatAmount(v *float64, currencyCode string) string {
	if v == nil {
		return "N/A"
	}
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := int64(math.Round(*v * math.Pow10(cur.Fraction)))
	return money.New(minor, cur.Code).Display()
}

// FormatPercent renders a literal percentage with two decimals, or "N/A".
func FormatPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v)
}

// orNA substitutes "N/A" for empty metadata fields in answers.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
