// Package tables handles table segmentation and header-to-role resolution
// for detected statement tables.
package tables

import (
	"strings"

	"portfolio_insight/pkg/models"
)

// ColumnRole identifies the semantic meaning of a table column.
type ColumnRole string

const (
	RoleName       ColumnRole = "name"
	RoleIdentifier ColumnRole = "identifier"
	RoleQuantity   ColumnRole = "quantity"
	RolePrice      ColumnRole = "price"
	RoleValue      ColumnRole = "value"
	RoleWeight     ColumnRole = "weight"
	RoleType       ColumnRole = "type"
	RoleCurrency   ColumnRole = "currency"
	RoleCategory   ColumnRole = "category"
)

// roleKeywords maps each role to the header fragments that imply it. Matching
// is lowercase substring, first hit wins.
var roleKeywords = map[ColumnRole][]string{
	RoleName:       {"name", "security", "description", "instrument", "holding", "position", "titel", "bezeichnung"},
	RoleIdentifier: {"isin", "symbol", "ticker", "cusip", "sedol", "identifier", "wkn"},
	RoleQuantity:   {"quantity", "shares", "units", "amount", "nominal", "anzahl", "stück"},
	RolePrice:      {"price", "cost", "kurs", "rate", "nav"},
	RoleValue:      {"value", "market value", "total", "worth", "balance", "wert", "betrag"},
	RoleWeight:     {"weight", "%", "percent", "allocation", "gewicht", "anteil"},
	RoleType:       {"type", "class", "category", "asset class", "sector", "art"},
	RoleCurrency:   {"currency", "ccy", "währung"},
	RoleCategory:   {"category", "class", "asset", "allocation", "segment"},
}

// ResolveColumn returns the index of the first header whose lowercased text
// contains any keyword for the role, or -1.
func ResolveColumn(headers []string, role ColumnRole) int {
	keywords := roleKeywords[role]
	for i, h := range headers {
		lower := strings.ToLower(strings.TrimSpace(h))
		if lower == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i
			}
		}
	}
	return -1
}

// SecuritiesColumns holds the resolved column indexes for a securities table.
// Indexes are -1 when the table has no matching header.
type SecuritiesColumns struct {
	Name       int
	Identifier int
	Quantity   int
	Price      int
	Value      int
	Weight     int
	Type       int
	Currency   int
}

// ResolveSecuritiesColumns resolves all roles a securities table row reader
// needs, in the fixed name -> identifier -> quantity -> price -> value ->
// weight order.
func ResolveSecuritiesColumns(headers []string) SecuritiesColumns {
	return SecuritiesColumns{
		Name:       ResolveColumn(headers, RoleName),
		Identifier: ResolveColumn(headers, RoleIdentifier),
		Quantity:   ResolveColumn(headers, RoleQuantity),
		Price:      ResolveColumn(headers, RolePrice),
		Value:      ResolveColumn(headers, RoleValue),
		Weight:     ResolveColumn(headers, RoleWeight),
		Type:       ResolveColumn(headers, RoleType),
		Currency:   ResolveColumn(headers, RoleCurrency),
	}
}

// IsSecuritiesTable reports whether a table qualifies for row-by-row security
// extraction. All three groups must match a header: a name-like column, an
// identifier-like column, and at least one numeric column (quantity, value or
// price). A partial match disqualifies the table; plain text-summary tables
// routinely have a name header and nothing else.
func IsSecuritiesTable(t *models.Table) bool {
	if t == nil || len(t.Headers) == 0 || len(t.Rows) == 0 {
		return false
	}
	cols := ResolveSecuritiesColumns(t.Headers)
	if cols.Name < 0 || cols.Identifier < 0 {
		return false
	}
	return cols.Quantity >= 0 || cols.Value >= 0 || cols.Price >= 0
}

// IsAllocationTable reports whether a table is an asset-allocation breakdown:
// the title or a header references asset+allocation, or a class/category
// header is paired with a weight/percentage header.
func IsAllocationTable(t *models.Table) bool {
	if t == nil || len(t.Rows) == 0 {
		return false
	}
	title := strings.ToLower(t.Title)
	if strings.Contains(title, "asset") && strings.Contains(title, "allocation") {
		return true
	}
	joined := strings.ToLower(strings.Join(t.Headers, " "))
	if strings.Contains(joined, "asset") && strings.Contains(joined, "allocation") {
		return true
	}
	hasCategory := ResolveColumn(t.Headers, RoleCategory) >= 0
	hasWeight := ResolveColumn(t.Headers, RoleWeight) >= 0
	return hasCategory && hasWeight && !IsSecuritiesTable(t)
}
