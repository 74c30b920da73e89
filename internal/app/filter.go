package app

import (
	"strings"

	"github.com/mvalencia464/onboard/internal/domain"
)

// significantTokens splits a business name on whitespace and keeps the
// lowercased tokens longer than 3 characters, dropping short connector words
// ("Oak & Co Roofing" keeps only "roofing").
func significantTokens(name string) []string {
	var out []string
	for _, tok := range strings.Fields(name) {
		if len(tok) > 3 {
			out = append(out, strings.ToLower(tok))
		}
	}
	return out
}

// filterRelevant keeps third-party reviews whose text mentions any significant
// token of the business name. The feed is shared across many unrelated
// businesses on one account, so without this unrelated reviews would
// contaminate the generated copy. Substring matching is a deliberately
// imprecise heuristic: it tolerates false positives (a token appearing in an
// unrelated review) and misses paraphrased reviews that never name the
// business.
func filterRelevant(businessName string, in []domain.RawReview) []domain.RawReview {
	tokens := significantTokens(businessName)
	out := make([]domain.RawReview, 0, len(in))
	for _, r := range in {
		text := strings.ToLower(r.Text)
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
