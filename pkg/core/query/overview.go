package query

import (
	"fmt"
	"strings"
)

// answerTotalValue reports the declared portfolio total on its own: the most
// common question gets the shortest answer.
func answerTotalValue(in Input, _ string) string {
	info := in.Data.PortfolioInfo
	if info.TotalValue == nil {
		return "The total portfolio value is not stated in this document."
	}
	return fmt.Sprintf("The total value of the portfolio is %s.", FormatAmount(info.TotalValue, info.Currency))
}

// AnswerOverview summarizes the document-level metadata and the record
// counts. It also serves as the fallback answer for unmatched questions.
func AnswerOverview(in Input, _ string) string {
	info := in.Data.PortfolioInfo

	var b strings.Builder
	b.WriteString("Document overview:\n")
	fmt.Fprintf(&b, "- Title: %s\n", orNA(info.Title))
	fmt.Fprintf(&b, "- Date: %s\n", orNA(info.Date))
	fmt.Fprintf(&b, "- Total value: %s\n", FormatAmount(info.TotalValue, info.Currency))
	fmt.Fprintf(&b, "- Currency: %s\n", orNA(info.Currency))
	if info.Owner != "" {
		fmt.Fprintf(&b, "- Owner: %s\n", info.Owner)
	}
	if info.Manager != "" {
		fmt.Fprintf(&b, "- Manager: %s\n", info.Manager)
	}
	if info.AccountNumber != "" {
		fmt.Fprintf(&b, "- Account number: %s\n", info.AccountNumber)
	}
	if info.Custodian != "" {
		fmt.Fprintf(&b, "- Custodian: %s\n", info.Custodian)
	}
	if info.Benchmark != "" {
		fmt.Fprintf(&b, "- Benchmark: %s\n", info.Benchmark)
	}
	if info.Strategy != "" {
		fmt.Fprintf(&b, "- Strategy: %s\n", info.Strategy)
	}
	fmt.Fprintf(&b, "- Securities extracted: %d\n", len(in.Data.Securities))
	fmt.Fprintf(&b, "- Allocation categories: %d", len(in.Data.AssetAllocation.Categories))
	return b.String()
}
