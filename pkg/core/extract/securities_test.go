package extract

import (
	"testing"
	"time"

	"portfolio_insight/pkg/models"
)

func holdingsTable() models.Table {
	return models.Table{
		Title:   "Holdings",
		Headers: []string{"Security Name", "ISIN", "Quantity", "Price", "Market Value", "Weight"},
		Rows: [][]string{
			{"Apple Inc", "US0378331005", "100", "175.00", "17,500.00", "12.5%"},
			{"Nestlé SA", "CH0038863350", "200", "105,50", "21.100,00", "15,1%"},
			{"Total", "", "", "", "38,600.00", ""},
		},
	}
}

func TestSecurities_FromTables(t *testing.T) {
	secs := ExtractSecurities("", []models.Table{holdingsTable()})
	if len(secs) != 2 {
		t.Fatalf("securities = %d, want 2 (total row skipped)", len(secs))
	}

	apple := secs[0]
	if apple.Name != "Apple Inc" || apple.ISIN != "US0378331005" {
		t.Errorf("unexpected security: %+v", apple)
	}
	if apple.Source != models.SourceTable {
		t.Errorf("Source = %q, want table", apple.Source)
	}
	if *apple.Quantity != 100 || *apple.Price != 175 || *apple.Value != 17500 || *apple.Percentage != 12.5 {
		t.Errorf("numeric fields: %+v", apple)
	}

	// European-formatted row parses into the same normalized numbers.
	nestle := secs[1]
	if *nestle.Price != 105.5 || *nestle.Value != 21100 || *nestle.Percentage != 15.1 {
		t.Errorf("locale normalization failed: %+v", nestle)
	}
}

func TestSecurities_FromText(t *testing.T) {
	text := `Holdings summary
Vanguard Global Fund
IE00B03HCZ61 quantity 1,200 price 98.50 value 118,200.00 weight 8.5%`

	secs := ExtractSecurities(text, nil)
	if len(secs) != 1 {
		t.Fatalf("securities = %d, want 1", len(secs))
	}
	sec := secs[0]
	if sec.ISIN != "IE00B03HCZ61" {
		t.Errorf("ISIN = %q", sec.ISIN)
	}
	if sec.Source != models.SourceText {
		t.Errorf("Source = %q, want text", sec.Source)
	}
	if sec.Name != "Vanguard Global Fund" {
		t.Errorf("Name = %q, want Vanguard Global Fund", sec.Name)
	}
	if sec.Quantity == nil || *sec.Quantity != 1200 {
		t.Errorf("Quantity = %v, want 1200", sec.Quantity)
	}
	if sec.Price == nil || *sec.Price != 98.5 {
		t.Errorf("Price = %v, want 98.5", sec.Price)
	}
	if sec.Value == nil || *sec.Value != 118200 {
		t.Errorf("Value = %v, want 118200", sec.Value)
	}
	if sec.Percentage == nil || *sec.Percentage != 8.5 {
		t.Errorf("Percentage = %v, want 8.5", sec.Percentage)
	}
}

func TestSecurities_DedupTablePrecedence(t *testing.T) {
	// Same ISIN in a table row and in free text. The merged result holds one
	// record keyed by that ISIN, with table values winning and text filling
	// only the fields the table left empty.
	tbl := models.Table{
		Headers: []string{"Name", "ISIN", "Quantity"},
		Rows:    [][]string{{"Apple Inc", "US0378331005", "100"}},
	}
	text := "Apple Incorporated US0378331005 quantity 999 value 17,500.00"

	secs := ExtractSecurities(text, []models.Table{tbl})
	if len(secs) != 1 {
		t.Fatalf("securities = %d, want 1 after dedup", len(secs))
	}
	sec := secs[0]
	if sec.Name != "Apple Inc" {
		t.Errorf("Name = %q, table source must win", sec.Name)
	}
	if *sec.Quantity != 100 {
		t.Errorf("Quantity = %f, table value must not be overwritten", *sec.Quantity)
	}
	if sec.Value == nil || *sec.Value != 17500 {
		t.Errorf("Value = %v, nil field must be enriched from text", sec.Value)
	}
	if sec.Source != models.SourceTable {
		t.Errorf("Source = %q, want table", sec.Source)
	}
}

func TestSecurities_InvalidIdentifierIgnored(t *testing.T) {
	tbl := models.Table{
		Headers: []string{"Name", "Symbol", "Value"},
		Rows:    [][]string{{"Apple Inc", "AAPL", "17,500"}},
	}
	secs := ExtractSecurities("", []models.Table{tbl})
	if len(secs) != 1 {
		t.Fatalf("securities = %d, want 1", len(secs))
	}
	if secs[0].ISIN != "" {
		t.Errorf("ISIN = %q, ticker must not be stored as ISIN", secs[0].ISIN)
	}
}

func TestIsISIN(t *testing.T) {
	valid := []string{"US0378331005", "IE00B03HCZ61", "CH0038863350", "DE000BAY0017"}
	for _, s := range valid {
		if !IsISIN(s) {
			t.Errorf("IsISIN(%q) = false, want true", s)
		}
	}
	invalid := []string{"us0378331005", "US03783310", "1234567890AB", "US037833100X", "US03783310055"}
	for _, s := range invalid {
		if IsISIN(s) {
			t.Errorf("IsISIN(%q) = true, want false", s)
		}
	}
}

func TestSecuritiesEnhanced_ProvenanceAndPlausibility(t *testing.T) {
	fixed := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	// The quantity token is the numeric tail of a misparsed identifier.
	tbl := models.Table{
		Headers: []string{"Name", "ISIN", "Quantity", "Value"},
		Rows: [][]string{
			{"Corp Bond 2030", "XS2434891245", "2434891245", "50,000"},
			{"Apple Inc", "US0378331005", "100", "17,500"},
		},
	}

	secs := ExtractSecuritiesEnhanced("", []models.Table{tbl})
	if len(secs) != 2 {
		t.Fatalf("securities = %d, want 2", len(secs))
	}

	bond := secs[0]
	if bond.Quantity != nil {
		t.Errorf("implausible quantity kept: %f", *bond.Quantity)
	}
	if bond.Value == nil || *bond.Value != 50000 {
		t.Errorf("Value = %v, must survive the quantity filter", bond.Value)
	}

	for _, sec := range secs {
		if sec.Confidence != 0.95 {
			t.Errorf("Confidence = %f, want 0.95", sec.Confidence)
		}
		if sec.ExtractedAt != "2024-04-01T12:00:00Z" {
			t.Errorf("ExtractedAt = %q", sec.ExtractedAt)
		}
	}
}

func TestSortSecuritiesByValue(t *testing.T) {
	v1, v2 := 100.0, 300.0
	secs := []models.Security{
		{Name: "A", Value: &v1},
		{Name: "B"},
		{Name: "C", Value: &v2},
	}
	sorted := SortSecuritiesByValue(secs)
	if sorted[0].Name != "C" || sorted[1].Name != "A" || sorted[2].Name != "B" {
		t.Errorf("unexpected order: %v, %v, %v", sorted[0].Name, sorted[1].Name, sorted[2].Name)
	}
	// Input order untouched.
	if secs[0].Name != "A" {
		t.Error("input slice mutated")
	}
}
