package extract

import (
	"log"

	"portfolio_insight/pkg/core/tables"
	"portfolio_insight/pkg/models"
)

// TableDetector is the external segmentation collaborator invoked when the
// caller supplies no pre-segmented tables.
type TableDetector interface {
	DetectTables(text string) []models.Table
}

// textDetector is the built-in fallback detector.
type textDetector struct{}

func (textDetector) DetectTables(text string) []models.Table {
	return tables.DetectTables(text)
}

// Aggregator orchestrates the per-domain extractors into one FinancialData
// record. Each invocation reads only its own immutable text/tables input, so
// Aggregators are safe to share across goroutines.
type Aggregator struct {
	detector TableDetector
}

// NewAggregator creates an aggregator with the built-in text table detector.
func NewAggregator() *Aggregator {
	return &Aggregator{detector: textDetector{}}
}

// SetDetector injects a custom segmentation collaborator (e.g. for testing).
func (a *Aggregator) SetDetector(d TableDetector) {
	a.detector = d
}

// ExtractFinancialData runs the full pipeline: portfolio info, asset
// allocation, securities (enhanced tier), performance. A failure inside one
// domain extractor is logged and replaced with that domain's empty default;
// the other domains still run. The worst case result is the structurally
// complete all-null record, never nil.
func (a *Aggregator) ExtractFinancialData(text string, tbls []models.Table) *models.FinancialData {
	if len(tbls) == 0 && text != "" {
		tbls = a.detector.DetectTables(text)
		log.Printf("[Aggregator] no tables supplied, detector segmented %d", len(tbls))
	}

	result := models.NewEmptyFinancialData()

	runDomain("portfolio_info", func() {
		result.PortfolioInfo = ExtractPortfolioInfo(text, tbls)
	})
	runDomain("asset_allocation", func() {
		result.AssetAllocation = ExtractAssetAllocation(text, tbls)
	})
	runDomain("securities", func() {
		if secs := ExtractSecuritiesEnhanced(text, tbls); secs != nil {
			result.Securities = secs
		}
	})
	runDomain("performance", func() {
		result.Performance = ExtractPerformance(text, tbls)
	})

	return result
}

// runDomain isolates one extractor: a panic is recovered and logged, leaving
// the domain at its empty default.
func runDomain(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Aggregator] %s extractor failed, using empty default: %v", name, r)
		}
	}()
	fn()
}

// ExtractFinancialData is the package-level convenience entry point used by
// the CLI and the API handlers.
func ExtractFinancialData(text string, tbls []models.Table) *models.FinancialData {
	return NewAggregator().ExtractFinancialData(text, tbls)
}
