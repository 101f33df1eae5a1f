// Package marketdata simulates a market data source. Real-time lookups are
// outside the pipeline's scope; this stub produces deterministic pseudo
// quotes so query handlers can phrase hypothetical price answers without a
// network dependency.
package marketdata

import (
	"hash/fnv"
)

// Quote is a simulated market quote.
type Quote struct {
	Identifier string  `json:"identifier"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	Simulated  bool    `json:"simulated"`
}

// StubProvider returns the same quote for the same identifier on every call.
type StubProvider struct{}

// NewStubProvider creates the simulated provider.
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// GetQuote derives a stable pseudo price in the 10.00-509.99 range from the
// identifier. The quote is flagged Simulated so no caller can mistake it for
// market data.
func (p *StubProvider) GetQuote(identifier string) Quote {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	cents := int64(h.Sum32() % 50000)
	return Quote{
		Identifier: identifier,
		Price:      10.0 + float64(cents)/100.0,
		Currency:   "USD",
		Simulated:  true,
	}
}
