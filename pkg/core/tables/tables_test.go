package tables

import (
	"testing"

	"portfolio_insight/pkg/models"
)

func TestResolveColumn(t *testing.T) {
	headers := []string{"Security Name", "ISIN", "Quantity", "Price", "Market Value", "Weight %"}

	tests := []struct {
		role     ColumnRole
		expected int
	}{
		{RoleName, 0},
		{RoleIdentifier, 1},
		{RoleQuantity, 2},
		{RolePrice, 3},
		{RoleValue, 4},
		{RoleWeight, 5},
		{RoleCurrency, -1},
	}

	for _, tc := range tests {
		if got := ResolveColumn(headers, tc.role); got != tc.expected {
			t.Errorf("ResolveColumn(%s) = %d, want %d", tc.role, got, tc.expected)
		}
	}
}

func TestIsSecuritiesTable(t *testing.T) {
	qualifying := &models.Table{
		Headers: []string{"Name", "ISIN", "Quantity", "Value"},
		Rows:    [][]string{{"Apple Inc", "US0378331005", "100", "17,500"}},
	}
	if !IsSecuritiesTable(qualifying) {
		t.Error("expected table with name+identifier+quantity headers to qualify")
	}

	// Name header alone must not qualify: text-summary tables look like this.
	summary := &models.Table{
		Headers: []string{"Name", "Comment"},
		Rows:    [][]string{{"Apple Inc", "Solid quarter"}},
	}
	if IsSecuritiesTable(summary) {
		t.Error("summary table without identifier/numeric headers must not qualify")
	}

	noNumeric := &models.Table{
		Headers: []string{"Name", "ISIN"},
		Rows:    [][]string{{"Apple Inc", "US0378331005"}},
	}
	if IsSecuritiesTable(noNumeric) {
		t.Error("table without any quantity/value/price header must not qualify")
	}

	if IsSecuritiesTable(nil) {
		t.Error("nil table must not qualify")
	}
}

func TestIsAllocationTable(t *testing.T) {
	byTitle := &models.Table{
		Title:   "Asset Allocation",
		Headers: []string{"Class", "Percentage", "Value"},
		Rows:    [][]string{{"Equity", "60%", "600,000"}},
	}
	if !IsAllocationTable(byTitle) {
		t.Error("expected allocation table by title")
	}

	byHeaders := &models.Table{
		Headers: []string{"Asset Class", "Weight"},
		Rows:    [][]string{{"Bonds", "40%"}},
	}
	if !IsAllocationTable(byHeaders) {
		t.Error("expected allocation table by class+weight headers")
	}

	securities := &models.Table{
		Headers: []string{"Name", "ISIN", "Quantity", "Weight"},
		Rows:    [][]string{{"Apple Inc", "US0378331005", "100", "12%"}},
	}
	if IsAllocationTable(securities) {
		t.Error("securities table must not be classified as allocation")
	}
}

func TestDetectTables_PlainText(t *testing.T) {
	text := `Portfolio Statement

Holdings
Name            ISIN            Quantity    Value
Apple Inc       US0378331005    100         17,500.00
Microsoft Corp  US5949181045    50          21,000.00

Closing remarks follow here.`

	detected := DetectTables(text)
	if len(detected) != 1 {
		t.Fatalf("expected 1 table, got %d", len(detected))
	}
	tbl := detected[0]
	if tbl.Title != "Holdings" {
		t.Errorf("title = %q, want %q", tbl.Title, "Holdings")
	}
	if len(tbl.Headers) != 4 {
		t.Errorf("headers = %v, want 4 columns", tbl.Headers)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][1] != "US0378331005" {
		t.Errorf("row[0][1] = %q, want ISIN", tbl.Rows[0][1])
	}
}

func TestDetectTables_IgnoresProse(t *testing.T) {
	text := "This statement summarizes your account.\nNo tborrowing occurred during the period.\n"
	if got := DetectTables(text); len(got) != 0 {
		t.Errorf("expected no tables in prose, got %d", len(got))
	}
}

func TestParseMarkdownTables(t *testing.T) {
	md := `# Asset Allocation

| Class  | Weight | Value    |
|--------|--------|----------|
| Equity | 60%    | 600,000  |
| Bonds  | 40%    | 400,000  |
`
	detected := ParseMarkdownTables(md)
	if len(detected) != 1 {
		t.Fatalf("expected 1 table, got %d", len(detected))
	}
	if detected[0].Title != "Asset Allocation" {
		t.Errorf("title = %q", detected[0].Title)
	}
	if len(detected[0].Rows) != 2 || detected[0].Rows[1][0] != "Bonds" {
		t.Errorf("unexpected rows: %v", detected[0].Rows)
	}
}

func TestParseHTMLTables(t *testing.T) {
	html := `<html><body>
<h3>Holdings</h3>
<table>
<tr><th>Name</th><th>ISIN</th><th>Value</th></tr>
<tr><td>Apple Inc</td><td>US0378331005</td><td>17,500</td></tr>
</table>
</body></html>`

	detected, err := ParseHTMLTables(html)
	if err != nil {
		t.Fatalf("ParseHTMLTables: %v", err)
	}
	if len(detected) != 1 {
		t.Fatalf("expected 1 table, got %d", len(detected))
	}
	if detected[0].Title != "Holdings" {
		t.Errorf("title = %q, want Holdings", detected[0].Title)
	}
	if detected[0].Rows[0][0] != "Apple Inc" {
		t.Errorf("unexpected first row: %v", detected[0].Rows[0])
	}
}

func TestTableCellBoundsCheck(t *testing.T) {
	tbl := &models.Table{
		Headers: []string{"Name", "ISIN", "Value"},
		Rows:    [][]string{{"Apple Inc", "US0378331005"}}, // ragged trailing cell
	}
	if got := tbl.Cell(tbl.Rows[0], 2); got != "" {
		t.Errorf("ragged cell read = %q, want empty", got)
	}
	if got := tbl.Cell(tbl.Rows[0], 0); got != "Apple Inc" {
		t.Errorf("cell read = %q", got)
	}
}
