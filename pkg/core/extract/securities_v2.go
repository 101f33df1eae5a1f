package extract

import (
	"log"
	"time"

	"portfolio_insight/pkg/core/numeric"
	"portfolio_insight/pkg/models"
)

// Enhanced securities extraction: the base two-source extractor plus a
// plausibility post-filter and provenance tagging.

const enhancedConfidence = 0.95

// timeNow is stubbed in tests; extraction itself is a pure function of its
// input apart from this provenance stamp.
var timeNow = time.Now

// ExtractSecuritiesEnhanced wraps ExtractSecurities. Quantities that fail the
// plausibility filter are cleared rather than dropping the security: the
// common failure mode is a bond face value or an ISIN numeric tail mistaken
// for a share count, and the rest of the record is still usable. Every result
// is tagged with its source, a fixed confidence and an extraction timestamp.
func ExtractSecuritiesEnhanced(text string, tbls []models.Table) []models.Security {
	secs := ExtractSecurities(text, tbls)
	now := timeNow().UTC().Format(time.RFC3339)

	cleared := 0
	for i := range secs {
		if secs[i].Quantity != nil && !numeric.IsReasonableQuantity(*secs[i].Quantity) {
			secs[i].Quantity = nil
			cleared++
		}
		secs[i].Confidence = enhancedConfidence
		secs[i].ExtractedAt = now
	}
	if cleared > 0 {
		log.Printf("[Securities] cleared %d implausible quantit(ies)", cleared)
	}
	return secs
}
