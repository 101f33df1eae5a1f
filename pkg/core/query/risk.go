package query

import (
	"fmt"
	"strings"
)

// Concentration thresholds for the diversification commentary, as literal
// percentages of portfolio value.
const (
	highConcentrationPct     = 25.0
	moderateConcentrationPct = 15.0
)

// AnswerRisk reasons about diversification from the extracted record: number
// of holdings, allocation spread, and single-position concentration. It
// reports observations, not advice.
func AnswerRisk(in Input, _ string) string {
	data := in.Data
	if len(data.Securities) == 0 && len(data.AssetAllocation.Categories) == 0 {
		return "Not enough extracted data to assess diversification."
	}

	var b strings.Builder
	b.WriteString("Diversification observations:\n")

	fmt.Fprintf(&b, "- Holdings identified: %d\n", len(data.Securities))
	fmt.Fprintf(&b, "- Asset classes identified: %d\n", len(data.AssetAllocation.Categories))

	if name, pct := largestPosition(in); name != "" {
		fmt.Fprintf(&b, "- Largest position: %s at %s of portfolio value\n", name, FormatPercent(&pct))
		switch {
		case pct >= highConcentrationPct:
			fmt.Fprintf(&b, "- Concentration: high; a single position above %.0f%% dominates outcomes\n", highConcentrationPct)
		case pct >= moderateConcentrationPct:
			b.WriteString("- Concentration: moderate\n")
		default:
			b.WriteString("- Concentration: low\n")
		}
	}

	switch classes := len(data.AssetAllocation.Categories); {
	case classes >= 4:
		b.WriteString("- Spread across four or more asset classes")
	case classes >= 2:
		b.WriteString("- Spread across multiple asset classes")
	case classes == 1:
		b.WriteString("- Allocation is concentrated in a single asset class")
	default:
		b.WriteString("- No allocation breakdown available for class-level assessment")
	}
	return b.String()
}

// largestPosition finds the holding with the biggest share of portfolio
// value, using the stated percentage when available and deriving it from
// values otherwise.
func largestPosition(in Input) (string, float64) {
	var total float64
	if in.Data.PortfolioInfo.TotalValue != nil {
		total = *in.Data.PortfolioInfo.TotalValue
	}

	bestName, bestPct := "", 0.0
	for _, sec := range in.Data.Securities {
		pct := 0.0
		switch {
		case sec.Percentage != nil:
			pct = *sec.Percentage
		case sec.Value != nil && total > 0:
			pct = *sec.Value / total * 100
		default:
			continue
		}
		if pct > bestPct {
			bestName, bestPct = sec.Name, pct
		}
	}
	return bestName, bestPct
}
