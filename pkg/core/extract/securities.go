package extract

import (
	"regexp"
	"sort"
	"strings"

	"portfolio_insight/pkg/core/numeric"
	"portfolio_insight/pkg/core/tables"
	"portfolio_insight/pkg/models"
)

// ISIN: 2-letter country code, 9 alphanumerics, 1 check digit. Matched
// case-sensitively against uppercase text.
var (
	isinExactRe = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)
	isinScanRe  = regexp.MustCompile(`\b[A-Z]{2}[A-Z0-9]{9}[0-9]\b`)
)

// IsISIN reports whether token is a well-formed ISIN.
func IsISIN(token string) bool {
	return isinExactRe.MatchString(token)
}

// ExtractSecurities runs the base two-source extraction: structured table
// rows plus a free-text identifier scan, merged by identifier key with table
// precedence.
func ExtractSecurities(text string, tbls []models.Table) []models.Security {
	fromTables := securitiesFromTables(tbls)
	fromText := securitiesFromText(text)
	return mergeSecurities(fromTables, fromText)
}

// securitiesFromTables extracts one Security per row of every qualifying
// table.
func securitiesFromTables(tbls []models.Table) []models.Security {
	var out []models.Security
	for i := range tbls {
		t := &tbls[i]
		if !tables.IsSecuritiesTable(t) {
			continue
		}
		cols := tables.ResolveSecuritiesColumns(t.Headers)
		for _, row := range t.Rows {
			sec := securityFromRow(t, row, cols)
			if sec != nil {
				out = append(out, *sec)
			}
		}
	}
	return out
}

func securityFromRow(t *models.Table, row []string, cols tables.SecuritiesColumns) *models.Security {
	name := strings.TrimSpace(t.Cell(row, cols.Name))
	if name == "" || strings.Contains(strings.ToLower(name), "total") {
		return nil
	}

	sec := &models.Security{
		Name:   name,
		Source: models.SourceTable,
	}

	ident := strings.ToUpper(strings.TrimSpace(t.Cell(row, cols.Identifier)))
	if IsISIN(ident) {
		sec.ISIN = ident
	}
	if cols.Type >= 0 {
		sec.Type = strings.TrimSpace(t.Cell(row, cols.Type))
	}
	if cols.Currency >= 0 {
		cur := strings.ToUpper(strings.TrimSpace(t.Cell(row, cols.Currency)))
		if len(cur) == 3 {
			sec.Currency = cur
		}
	}
	if cols.Quantity >= 0 {
		sec.Quantity = numeric.ParseAmount(t.Cell(row, cols.Quantity))
	}
	if cols.Price >= 0 {
		sec.Price = numeric.ParseAmount(t.Cell(row, cols.Price))
	}
	if cols.Value >= 0 {
		sec.Value = numeric.ParseAmount(t.Cell(row, cols.Value))
	}
	if cols.Weight >= 0 {
		sec.Percentage = numeric.ParsePercent(t.Cell(row, cols.Weight))
	}

	// A row with neither identifier nor any numeric field is layout noise.
	if sec.ISIN == "" && sec.Quantity == nil && sec.Price == nil && sec.Value == nil {
		return nil
	}
	return sec
}

// Free-text scan tuning. The name is searched backwards from the identifier
// within nameWindow bytes; labeled numerics are searched forward within
// valueWindow bytes.
const (
	nameWindow  = 160
	valueWindow = 300
	nameWordCap = 5
)

// valueLabels maps a field setter to its recognized label synonyms. The first
// numeric token following a label inside the forward window wins.
var valueLabels = []struct {
	keywords []string
	assign   func(*models.Security, *float64)
	percent  bool
}{
	{[]string{"quantity", "shares", "units", "nominal"}, func(s *models.Security, v *float64) { s.Quantity = v }, false},
	{[]string{"price", "cost", "rate"}, func(s *models.Security, v *float64) { s.Price = v }, false},
	{[]string{"value", "worth", "amount"}, func(s *models.Security, v *float64) { s.Value = v }, false},
	{[]string{"weight", "allocation", "percent"}, func(s *models.Security, v *float64) { s.Percentage = v }, true},
}

var numericTokenRe = regexp.MustCompile(`[$€£¥]?\s?\d[\d.,]*\s?%?`)

// securitiesFromText scans free text for identifier-shaped tokens and builds
// a Security around each: a plausible name from the window before the
// identifier, labeled numerics from the window after it.
func securitiesFromText(text string) []models.Security {
	var out []models.Security
	seen := make(map[string]bool)

	for _, loc := range isinScanRe.FindAllStringIndex(text, -1) {
		isin := text[loc[0]:loc[1]]
		if seen[isin] {
			continue
		}
		seen[isin] = true

		sec := models.Security{
			ISIN:   isin,
			Name:   nameBeforeIdentifier(text, loc[0]),
			Source: models.SourceText,
		}
		applyLabeledValues(&sec, forwardWindow(text, loc[1]))

		if sec.Name == "" {
			sec.Name = isin
		}
		out = append(out, sec)
	}
	return out
}

// nameBeforeIdentifier looks backwards for a plausible security name: the
// last short line before the identifier, or failing that the last few words.
func nameBeforeIdentifier(text string, idStart int) string {
	start := idStart - nameWindow
	if start < 0 {
		start = 0
	}
	window := text[start:idStart]

	// Prefer the tail of the current line, then the previous line.
	lines := strings.Split(window, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		candidate := cleanNameCandidate(lines[i])
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

var parenRe = regexp.MustCompile(`\([^)]*\)`)

// cleanNameCandidate strips identifiers, numerics and punctuation from a
// candidate line and keeps at most the trailing nameWordCap words.
func cleanNameCandidate(line string) string {
	line = isinScanRe.ReplaceAllString(line, "")
	line = parenRe.ReplaceAllString(line, "")
	line = strings.Trim(line, " \t:•-–")

	words := strings.Fields(line)
	var kept []string
	for _, w := range words {
		if numeric.ParseAmount(w) != nil || numeric.ParsePercent(w) != nil {
			kept = kept[:0] // numbers break a name run
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) > nameWordCap {
		kept = kept[len(kept)-nameWordCap:]
	}
	name := strings.Trim(strings.Join(kept, " "), " ,.:;-")
	if len(name) < 2 {
		return ""
	}
	return name
}

func forwardWindow(text string, from int) string {
	end := from + valueWindow
	if end > len(text) {
		end = len(text)
	}
	return text[from:end]
}

// applyLabeledValues fills numeric fields by proximity-to-keyword matching:
// for each label group, the first numeric token after the earliest label
// occurrence inside the window.
func applyLabeledValues(sec *models.Security, window string) {
	lower := strings.ToLower(window)
	for _, vl := range valueLabels {
		start, width := -1, 0
		for _, kw := range vl.keywords {
			if idx := strings.Index(lower, kw); idx >= 0 && (start < 0 || idx < start) {
				start, width = idx, len(kw)
			}
		}
		if start < 0 || start+width >= len(window) {
			continue
		}
		tail := window[start+width:]
		token := numericTokenRe.FindString(tail)
		if token == "" {
			continue
		}
		if vl.percent {
			vl.assign(sec, numeric.ParsePercent(token))
		} else {
			vl.assign(sec, numeric.ParseAmount(strings.TrimSuffix(strings.TrimSpace(token), "%")))
		}
	}
}

// mergeSecurities merges the two sources by identifier key. Table records
// win on conflicts; text records only fill fields the table left nil. Order
// is table records first, then text-only records, both in extraction order.
func mergeSecurities(fromTables, fromText []models.Security) []models.Security {
	merged := make([]models.Security, 0, len(fromTables)+len(fromText))
	index := make(map[string]int)

	for _, sec := range fromTables {
		index[sec.Key()] = len(merged)
		merged = append(merged, sec)
	}

	for _, sec := range fromText {
		at, exists := index[sec.Key()]
		if !exists {
			index[sec.Key()] = len(merged)
			merged = append(merged, sec)
			continue
		}
		enrich(&merged[at], &sec)
	}
	return merged
}

// enrich fills only nil/empty fields of dst from src. Non-nil fields are
// never overwritten by the lower-confidence source.
func enrich(dst, src *models.Security) {
	if dst.Quantity == nil {
		dst.Quantity = src.Quantity
	}
	if dst.Price == nil {
		dst.Price = src.Price
	}
	if dst.Value == nil {
		dst.Value = src.Value
	}
	if dst.Percentage == nil {
		dst.Percentage = src.Percentage
	}
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.Currency == "" {
		dst.Currency = src.Currency
	}
	if dst.Name == "" || dst.Name == dst.ISIN {
		if src.Name != "" {
			dst.Name = src.Name
		}
	}
}

// SortSecuritiesByValue orders securities descending by value, nils last.
// Used by the query handlers for top-holdings answers.
func SortSecuritiesByValue(secs []models.Security) []models.Security {
	sorted := make([]models.Security, len(secs))
	copy(sorted, secs)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].Value, sorted[j].Value
		if vi == nil {
			return false
		}
		if vj == nil {
			return true
		}
		return *vi > *vj
	})
	return sorted
}
