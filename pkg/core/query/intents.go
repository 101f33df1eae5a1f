package query

import (
	"strings"

	"portfolio_insight/pkg/models"
)

// Input is the immutable context every handler reads: the aggregated record
// plus the raw text and tables it came from.
type Input struct {
	Data   *models.FinancialData
	Tables []models.Table
	Text   string
}

// intentRule pairs a fuzzy predicate with its responder. Rules are evaluated
// in priority order; exact-string dispatch does not work for free-text
// questions.
type intentRule struct {
	name    string
	matches func(q string) bool
	respond func(in Input, q string) string
}

// Router answers questions by walking the ordered rule list.
type Router struct {
	rules []intentRule
}

// NewRouter builds the default rule order: overview and totals first, then
// allocation, security lookups, performance, and the risk reasoning handler.
func NewRouter() *Router {
	return &Router{rules: []intentRule{
		{"total_value", matchesTotalValue, answerTotalValue},
		{"overview", matchesOverview, AnswerOverview},
		{"allocation", matchesAllocation, AnswerAllocation},
		{"performance", matchesPerformance, AnswerPerformance},
		{"risk", matchesRisk, AnswerRisk},
		{"security_lookup", matchesSecurityLookup, AnswerSecurities},
		{"securities_list", matchesSecuritiesList, AnswerSecurities},
	}}
}

// Answer routes the question to the first matching rule. Unmatched questions
// get the overview answer, the safest general response.
func (r *Router) Answer(in Input, question string) string {
	q := strings.ToLower(question)
	for _, rule := range r.rules {
		if rule.matches(q) {
			return rule.respond(in, q)
		}
	}
	return AnswerOverview(in, q)
}

func containsAny(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func matchesTotalValue(q string) bool {
	return containsAny(q, "total value", "how much", "portfolio value", "worth overall", "total amount")
}

func matchesOverview(q string) bool {
	return containsAny(q, "overview", "summary", "summarize", "about this document", "what is this", "metadata", "account number", "who owns", "owner", "manager", "custodian", "benchmark", "statement date")
}

func matchesAllocation(q string) bool {
	return containsAny(q, "allocation", "asset class", "asset mix", "breakdown", "how is the portfolio divided", "distribution")
}

func matchesPerformance(q string) bool {
	return containsAny(q, "performance", "return", "ytd", "year to date", "gain", "how did it do")
}

func matchesRisk(q string) bool {
	return containsAny(q, "risk", "diversif", "concentrat", "exposure", "safe")
}

func matchesSecuritiesList(q string) bool {
	return containsAny(q, "securities", "holdings", "positions", "what do i own", "stocks", "bonds", "instruments", "largest", "top")
}
