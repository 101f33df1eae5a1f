// Package models defines the structured record produced by the extraction
// pipeline and consumed by the query handlers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Table is a detected table from the document source: a title (possibly
// empty), a header row, and data rows. Rows may be ragged at the tail;
// readers bounds-check column indexes instead of padding.
type Table struct {
	Title   string     `json:"title,omitempty"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Cell returns the cell at col for the given row, or "" when the row is
// shorter than col+1.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// SecuritySource identifies which extraction source produced a Security.
type SecuritySource string

const (
	SourceTable SecuritySource = "table"
	SourceText  SecuritySource = "text"
)

// Security is one holding extracted from the statement. Identity key is ISIN
// when present, otherwise Name. Records are enriched (nil fields filled from
// a second source) but a non-nil field is never overwritten by a
// lower-confidence source.
type Security struct {
	Name        string         `json:"name"`
	ISIN        string         `json:"isin,omitempty"`
	Type        string         `json:"type,omitempty"`
	Quantity    *float64       `json:"quantity"`
	Price       *float64       `json:"price"`
	Value       *float64       `json:"value"`
	Percentage  *float64       `json:"percentage"`
	Currency    string         `json:"currency,omitempty"`
	Source      SecuritySource `json:"source"`
	Confidence  float64        `json:"confidence,omitempty"`
	ExtractedAt string         `json:"extracted_at,omitempty"` // RFC3339, set by the enhanced extractor
}

// Key returns the de-duplication key for merging the two extraction sources.
func (s *Security) Key() string {
	if s.ISIN != "" {
		return s.ISIN
	}
	return s.Name
}

// AssetAllocationCategory is one slice of the allocation breakdown. Value is
// non-negative when present; Percentage is the literal percentage (12.5, not
// 0.125).
type AssetAllocationCategory struct {
	Name       string   `json:"name"`
	Percentage *float64 `json:"percentage"`
	Value      *float64 `json:"value"`
}

// AssetAllocation groups the categories with the summed value total.
// Percentages are not required to sum to 100; partial statements are common.
type AssetAllocation struct {
	Categories []AssetAllocationCategory `json:"categories"`
	Total      float64                   `json:"total"`
}

// PortfolioInfo carries document-level metadata. Unresolved fields stay at
// their zero value; nothing is guessed.
type PortfolioInfo struct {
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	TotalValue    *float64 `json:"total_value"`
	Currency      string   `json:"currency"` // defaults to "USD"
	Owner         string   `json:"owner"`
	Manager       string   `json:"manager"`
	AccountNumber string   `json:"account_number"`
	Custodian     string   `json:"custodian"`
	Benchmark     string   `json:"benchmark"`
	Strategy      string   `json:"strategy"`
}

// PerformanceMetrics holds period returns as literal percentages. Absent
// periods are nil, never zero, unless the source explicitly states zero.
type PerformanceMetrics struct {
	YTD            *float64 `json:"ytd"`
	OneMonth       *float64 `json:"one_month"`
	ThreeMonth     *float64 `json:"three_month"`
	SixMonth       *float64 `json:"six_month"`
	OneYear        *float64 `json:"one_year"`
	ThreeYear      *float64 `json:"three_year"`
	FiveYear       *float64 `json:"five_year"`
	TenYear        *float64 `json:"ten_year"`
	SinceInception *float64 `json:"since_inception"`
}

// FinancialData is the root record, constructed once per document by the
// aggregator and read-only afterwards. A failed extraction yields the
// NewEmptyFinancialData shape, never a nil or partially-shaped record.
type FinancialData struct {
	PortfolioInfo   PortfolioInfo      `json:"portfolio_info"`
	AssetAllocation AssetAllocation    `json:"asset_allocation"`
	Securities      []Security         `json:"securities"`
	Performance     PerformanceMetrics `json:"performance"`
}

// NewEmptyFinancialData returns the structurally complete all-null default.
// Callers always get non-nil slices.
func NewEmptyFinancialData() *FinancialData {
	return &FinancialData{
		PortfolioInfo: PortfolioInfo{Currency: "USD"},
		AssetAllocation: AssetAllocation{
			Categories: []AssetAllocationCategory{},
		},
		Securities:  []Security{},
		Performance: PerformanceMetrics{},
	}
}

// ReconciliationReport is the diagnostic emitted by the quality layer. It
// never blocks result delivery.
type ReconciliationReport struct {
	SecuritiesTotal float64 `json:"securities_total"`
	DeclaredTotal   float64 `json:"declared_total"`
	PercentDiff     float64 `json:"percent_diff"`
	Reconciled      bool    `json:"reconciled"`
	Mode            string  `json:"mode"` // "strict" or "relaxed"
	Currency        string  `json:"currency"`
	Converted       bool    `json:"converted"` // true when an FX rate was applied
}

// ExtractionResult wraps one pipeline run for persistence and the API.
type ExtractionResult struct {
	ID             uuid.UUID             `json:"id"`
	Data           *FinancialData        `json:"data"`
	Reconciliation *ReconciliationReport `json:"reconciliation,omitempty"`
	ExtractedAt    time.Time             `json:"extracted_at"`
}
