package query

import (
	"strings"

	"portfolio_insight/pkg/models"
)

// minPartialWordLen filters stop words out of the partial-match fallback.
const minPartialWordLen = 4

// ResolveSecurityName matches a question substring against the known security
// names. Full-name containment wins; otherwise the security sharing the most
// question words longer than three characters wins. Returns nil when nothing
// matches.
func ResolveSecurityName(question string, securities []models.Security) *models.Security {
	q := strings.ToLower(question)

	for i := range securities {
		name := strings.ToLower(securities[i].Name)
		if name != "" && strings.Contains(q, name) {
			return &securities[i]
		}
	}

	// Partial fallback: count shared long words.
	questionWords := longWords(q)
	bestIdx, bestHits := -1, 0
	for i := range securities {
		hits := 0
		for w := range longWords(strings.ToLower(securities[i].Name)) {
			if questionWords[w] {
				hits++
			}
		}
		if hits > bestHits {
			bestIdx, bestHits = i, hits
		}
	}
	if bestIdx < 0 {
		return nil
	}
	return &securities[bestIdx]
}

func longWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if len(w) >= minPartialWordLen {
			words[w] = true
		}
	}
	return words
}
