package extract

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"portfolio_insight/pkg/core/numeric"
	"portfolio_insight/pkg/core/tables"
	"portfolio_insight/pkg/models"
)

// allocationTier is one fallback strategy. Tiers run in priority order and
// the first one returning categories wins: explicit tables beat explicit
// text, which beats inference from grouped securities rows.
type allocationTier struct {
	name string
	run  func(text string, tbls []models.Table) []models.AssetAllocationCategory
}

var allocationTiers = []allocationTier{
	{"table", allocationFromTables},
	{"text", allocationFromText},
	{"inference", allocationFromSecurityTypes},
}

// ExtractAssetAllocation walks the tier list and assembles the allocation
// breakdown from the first tier that produces categories.
func ExtractAssetAllocation(text string, tbls []models.Table) models.AssetAllocation {
	for _, tier := range allocationTiers {
		categories := tier.run(text, tbls)
		if len(categories) == 0 {
			continue
		}
		log.Printf("[Allocation] %d categor(ies) via %s tier", len(categories), tier.name)
		return models.AssetAllocation{
			Categories: categories,
			Total:      sumCategoryValues(categories),
		}
	}
	return models.AssetAllocation{Categories: []models.AssetAllocationCategory{}}
}

func sumCategoryValues(categories []models.AssetAllocationCategory) float64 {
	var total float64
	for _, c := range categories {
		if c.Value != nil {
			total += *c.Value
		}
	}
	return total
}

// allocationFromTables reads the first allocation-qualifying table. Rows with
// an empty category cell or a "total" label are skipped; negative values are
// dropped as parse artifacts.
func allocationFromTables(_ string, tbls []models.Table) []models.AssetAllocationCategory {
	for i := range tbls {
		t := &tbls[i]
		if !tables.IsAllocationTable(t) {
			continue
		}

		catCol := tables.ResolveColumn(t.Headers, tables.RoleCategory)
		if catCol < 0 {
			catCol = 0
		}
		pctCol := tables.ResolveColumn(t.Headers, tables.RoleWeight)
		valCol := tables.ResolveColumn(t.Headers, tables.RoleValue)

		var categories []models.AssetAllocationCategory
		for _, row := range t.Rows {
			name := strings.TrimSpace(t.Cell(row, catCol))
			if name == "" || strings.Contains(strings.ToLower(name), "total") {
				continue
			}
			cat := models.AssetAllocationCategory{Name: name}
			if pctCol >= 0 {
				cat.Percentage = numeric.ParsePercent(t.Cell(row, pctCol))
			}
			if valCol >= 0 {
				if v := numeric.ParseAmount(t.Cell(row, valCol)); v != nil && *v >= 0 {
					cat.Value = v
				}
			}
			categories = append(categories, cat)
		}
		if len(categories) > 0 {
			return categories
		}
	}
	return nil
}

var (
	allocationHeadingRe = regexp.MustCompile(`(?im)^.*asset\s+allocation.*$`)
	allocationLineRe    = regexp.MustCompile(`(?m)^\s*([A-Za-z][A-Za-z &/\-]*?)\s*[:\-]?\s+(\d+(?:[.,]\d+)?)\s*%(?:\s+([$€£¥]?\s?[\d.,]+))?`)
	headingLineRe       = regexp.MustCompile(`^[A-Z][A-Za-z ]+$`)
)

// allocationFromText locates an "Asset Allocation" block, bounded by the next
// blank line or the next capitalized heading, and pattern-matches repeated
// "<label> <percent>% [<amount>]" lines inside it.
func allocationFromText(text string, _ []models.Table) []models.AssetAllocationCategory {
	loc := allocationHeadingRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	block := allocationBlock(text[loc[1]:])
	var categories []models.AssetAllocationCategory
	for _, m := range allocationLineRe.FindAllStringSubmatch(block, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || strings.Contains(strings.ToLower(name), "total") {
			continue
		}
		pct := numeric.ParsePercent(m[2])
		if pct == nil {
			continue
		}
		cat := models.AssetAllocationCategory{Name: name, Percentage: pct}
		if m[3] != "" {
			if v := numeric.ParseAmount(m[3]); v != nil && *v >= 0 {
				cat.Value = v
			}
		}
		categories = append(categories, cat)
	}
	return categories
}

// allocationBlock cuts the text following the heading at the first blank line
// or the next standalone capitalized heading.
func allocationBlock(rest string) string {
	lines := strings.Split(rest, "\n")
	var kept []string
	seenContent := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if seenContent {
				break
			}
			continue
		}
		if seenContent && headingLineRe.MatchString(trimmed) && !strings.Contains(trimmed, "%") {
			break
		}
		seenContent = true
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// allocationFromSecurityTypes derives a breakdown by grouping securities-table
// rows on their resolved type column and summing values per group. Percentage
// is the group share of the grand total. Categories come back sorted by value
// descending.
func allocationFromSecurityTypes(_ string, tbls []models.Table) []models.AssetAllocationCategory {
	groups := make(map[string]float64)
	var grand float64

	for i := range tbls {
		t := &tbls[i]
		if !tables.IsSecuritiesTable(t) {
			continue
		}
		typeCol := tables.ResolveColumn(t.Headers, tables.RoleType)
		valCol := tables.ResolveColumn(t.Headers, tables.RoleValue)
		if typeCol < 0 || valCol < 0 {
			continue
		}
		for _, row := range t.Rows {
			typ := strings.TrimSpace(t.Cell(row, typeCol))
			if typ == "" {
				continue
			}
			v := numeric.ParseAmount(t.Cell(row, valCol))
			if v == nil || *v < 0 {
				continue
			}
			groups[typ] += *v
			grand += *v
		}
	}

	if len(groups) == 0 || grand == 0 {
		return nil
	}

	categories := make([]models.AssetAllocationCategory, 0, len(groups))
	for name, value := range groups {
		v := value
		pct := value / grand * 100
		categories = append(categories, models.AssetAllocationCategory{
			Name:       name,
			Value:      &v,
			Percentage: &pct,
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		if *categories[i].Value != *categories[j].Value {
			return *categories[i].Value > *categories[j].Value
		}
		return categories[i].Name < categories[j].Name
	})
	return categories
}
