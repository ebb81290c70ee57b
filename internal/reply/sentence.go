package reply

import (
	"strings"
	"unicode"
)

// splitSentences cuts text at whitespace that follows terminal punctuation.
// The punctuation stays attached to its sentence; the separating whitespace
// is consumed.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	var current strings.Builder

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		if !isTerminal(r) {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentences = append(sentences, current.String())
		current.Reset()
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

// dedupeAdjacent drops sentences identical to their immediate predecessor
// after trimming. Non-adjacent repeats are kept.
func dedupeAdjacent(sentences []string) []string {
	var out []string
	prev := ""
	for _, s := range sentences {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if prev != "" && trimmed == prev {
			continue
		}
		out = append(out, trimmed)
		prev = trimmed
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
