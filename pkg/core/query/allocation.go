package query

import (
	"fmt"
	"strings"
)

// AnswerAllocation renders the asset-allocation breakdown as a bullet list
// with percentage and value per category.
func AnswerAllocation(in Input, _ string) string {
	alloc := in.Data.AssetAllocation
	currency := in.Data.PortfolioInfo.Currency
	if len(alloc.Categories) == 0 {
		return "No asset allocation breakdown was found in this document."
	}

	var b strings.Builder
	b.WriteString("Asset allocation:\n")
	for _, cat := range alloc.Categories {
		fmt.Fprintf(&b, "- %s: %s", cat.Name, FormatPercent(cat.Percentage))
		if cat.Value != nil {
			fmt.Fprintf(&b, " (%s)", FormatAmount(cat.Value, currency))
		}
		b.WriteByte('\n')
	}
	if alloc.Total > 0 {
		total := alloc.Total
		fmt.Fprintf(&b, "Total allocated value: %s", FormatAmount(&total, currency))
	} else {
		b.WriteString("No category values were stated.")
	}
	return b.String()
}
