package reply

import (
	"regexp"
	"strings"

	"github.com/clarahq/support-backend/internal/model/faq"
)

// offeringsTrigger marks replies that promise a list of offerings; the
// umbrella FAQ answer is appended when it is missing.
const offeringsTrigger = "these include"

// placeholderMap holds the token → canonical-answer bindings scanned out of
// the FAQ list. Keys keep insertion order so substitution is deterministic;
// assigning an existing key overwrites its answer, matching a later FAQ
// entry shadowing an earlier one.
type placeholderMap struct {
	keys      []string
	answers   map[string]string
	offerings string
}

func (m *placeholderMap) set(key, answer string) {
	if _, ok := m.answers[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.answers[key] = answer
}

func buildPlaceholderMap(entries []faq.Entry) *placeholderMap {
	m := &placeholderMap{answers: make(map[string]string)}
	for _, entry := range entries {
		q := strings.ToLower(entry.Question)
		a := entry.Answer
		if strings.Contains(q, "managed cloud hosting") || strings.Contains(q, "managed cloud") {
			m.set("service 1", a)
			m.set("managed cloud hosting", a)
		}
		if strings.Contains(q, "virtual private servers") || strings.Contains(q, "vps") {
			m.set("service 2", a)
			m.set("vps", a)
		}
		if strings.Contains(q, "public cloud") || strings.Contains(q, "public cloud services") {
			m.set("service 3", a)
			m.set("public cloud services", a)
		}
		if strings.HasPrefix(q, "what cloud") {
			m.offerings = a
		}
	}
	return m
}

// resolve applies every binding to text in key order.
func (m *placeholderMap) resolve(text string) string {
	for _, key := range m.keys {
		text = substitute(text, key, m.answers[key])
	}
	return text
}

// ResolvePlaceholders rewrites reply so that placeholder tokens, bracketed
// like "[service 1]" or bare like "managed cloud hosting", are substituted
// with their canonical FAQ answers. An answer already present verbatim is
// never inserted a second time, and consecutive duplicate sentences are
// suppressed, so the resolution is idempotent.
func ResolvePlaceholders(reply string, entries []faq.Entry) string {
	if reply == "" || len(entries) == 0 {
		return reply
	}

	m := buildPlaceholderMap(entries)
	out := m.resolve(reply)

	// Appending the offerings answer in its resolved form keeps the whole
	// pass a fixed point: a second resolution finds the text verbatim and
	// leaves it alone.
	if strings.Contains(strings.ToLower(out), offeringsTrigger) && m.offerings != "" {
		if offerings := m.resolve(m.offerings); !strings.Contains(out, offerings) {
			out = out + "\n\n" + offerings
		}
	}

	if deduped := dedupeAdjacent(splitSentences(strings.TrimSpace(out))); len(deduped) > 0 {
		out = strings.Join(deduped, " ")
	}
	return out
}

// substitute replaces occurrences of key with answer. Bracketed tokens win;
// bare whole-word occurrences are only rewritten when no bracketed token was
// found. When the answer is already in the text verbatim, nothing changes.
func substitute(text, key, answer string) string {
	if strings.TrimSpace(answer) != "" && strings.Contains(text, strings.TrimSpace(answer)) {
		return text
	}

	bracketed := regexp.MustCompile(`(?i)\[` + regexp.QuoteMeta(key) + `\]`)
	if replaced := bracketed.ReplaceAllLiteralString(text, answer); replaced != text {
		return replaced
	}

	bare := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(key) + `\b`)
	return bare.ReplaceAllLiteralString(text, answer)
}
