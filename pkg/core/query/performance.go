package query

import (
	"fmt"
	"strings"
)

// AnswerPerformance lists every stated period return; periods the document
// does not state are omitted rather than shown as zero.
func AnswerPerformance(in Input, _ string) string {
	perf := in.Data.Performance

	type period struct {
		label string
		value *float64
	}
	periods := []period{
		{"YTD", perf.YTD},
		{"1 month", perf.OneMonth},
		{"3 months", perf.ThreeMonth},
		{"6 months", perf.SixMonth},
		{"1 year", perf.OneYear},
		{"3 years", perf.ThreeYear},
		{"5 years", perf.FiveYear},
		{"10 years", perf.TenYear},
		{"Since inception", perf.SinceInception},
	}

	var b strings.Builder
	b.WriteString("Performance:\n")
	stated := 0
	for _, p := range periods {
		if p.value == nil {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", p.label, FormatPercent(p.value))
		stated++
	}
	if stated == 0 {
		return "No performance figures were found in this document."
	}
	return strings.TrimRight(b.String(), "\n")
}
