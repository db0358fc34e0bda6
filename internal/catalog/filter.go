package catalog

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/thunderx/thunder/internal/domain"
)

// Filter returns the items whose name or category fuzzily contains query,
// keeping the input order. Matching folds case and diacritics so "cronografo"
// finds "Cronógrafo Estilo Suizo". An empty query returns a copy of items.
func Filter(items []domain.Item, query string) []domain.Item {
	query = strings.TrimSpace(query)
	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if query == "" || matches(query, item) {
			out = append(out, item)
		}
	}
	return out
}

func matches(query string, item domain.Item) bool {
	for _, token := range strings.Fields(query) {
		if !fuzzy.MatchNormalizedFold(token, item.Name) &&
			!fuzzy.MatchNormalizedFold(token, string(item.Category)) {
			return false
		}
	}
	return true
}
