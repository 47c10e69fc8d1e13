// Package didyoumean picks the closest known name for an unresolved
// identifier.
package didyoumean

import (
	"github.com/agext/levenshtein"
)

// maxDistance is the largest edit distance still reported as a suggestion.
const maxDistance = 2

// Suggest returns the candidate closest to given, or "" when nothing is close
// enough. Ties go to the candidate listed first, so callers that pass sorted
// candidates get deterministic answers.
func Suggest(given string, candidates []string) string {
	best := ""
	bestDist := maxDistance + 1
	for _, c := range candidates {
		if c == given {
			continue
		}
		dist := levenshtein.Distance(given, c, nil)
		if dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}
