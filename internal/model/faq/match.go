package faq

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the minimum similarity ratio for a fuzzy FAQ hit.
const DefaultThreshold = 0.65

// BestMatch returns the entry whose question is most similar to query,
// provided the similarity reaches threshold. Similarity is the
// sequence-matching ratio over characters (matching blocks, not edit
// distance). Ties keep the earliest entry in list order.
func BestMatch(query string, entries []Entry, threshold float64) (Entry, bool) {
	var best Entry
	bestRatio := 0.0
	found := false

	for _, entry := range entries {
		matcher := difflib.NewMatcher(splitChars(query), splitChars(entry.Question))
		ratio := matcher.Ratio()
		if ratio >= threshold && ratio > bestRatio {
			best = entry
			bestRatio = ratio
			found = true
		}
	}
	return best, found
}

func splitChars(s string) []string {
	return strings.Split(s, "")
}
