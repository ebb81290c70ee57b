// Package confidence screens generated replies for signals that the model
// itself is unsure and a human should take over.
package confidence

import "strings"

// minConfidentLength guards against degenerate one-word completions.
const minConfidentLength = 10

// lowConfidencePhrases are lexical triggers that force an escalation
// regardless of the rest of the reply.
var lowConfidencePhrases = []string{
	"i don't know",
	"i am not sure",
	"i'm not sure",
	"i cannot help with",
	"can't help",
	"i might be wrong",
	"please contact support",
	"escalate",
}

// Low reports whether reply should be replaced by the escalation message.
func Low(reply string) bool {
	trimmed := strings.TrimSpace(reply)
	if len(trimmed) < minConfidentLength {
		return true
	}
	lowered := strings.ToLower(trimmed)
	for _, phrase := range lowConfidencePhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
