package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how different a suggestion may be from the
// query, relative to the query length.
const maxSuggestDistance = 3

// Suggest returns the candidate closest to query by edit distance, compared
// case-insensitively. It reports false when nothing is close enough or the
// query is blank.
func Suggest(query string, candidates []string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		d := levenshtein.ComputeDistance(q, strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	limit := maxSuggestDistance
	if len(q) < limit {
		limit = len(q)
	}
	if bestDist < 0 || bestDist > limit || strings.EqualFold(best, q) {
		return "", false
	}
	return best, true
}
