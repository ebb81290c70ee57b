package reply

import (
	"regexp"
	"strings"
	"unicode"
)

// FollowUpPrompt is appended to explanatory replies that end without a
// question, so the conversation always offers a next step.
const FollowUpPrompt = "Would you like instructions to set this up or should I escalate this?"

// fillerWords are acknowledgement openers stripped from the very beginning
// of a reply. At most one is removed.
var fillerWords = []string{
	"excellent", "great", "okay", "sure", "thanks", "thank you", "perfect", "alright",
}

var (
	bulletMarkerRe = regexp.MustCompile(`\s*[*\x{2022}]\s*`)
	listGapRe      = regexp.MustCompile(`([^\n])\n(- |\d+\. )`)
	blankRunRe     = regexp.MustCompile(`\n{3,}`)
)

// Format normalizes raw completion text into the fixed reply shape: no
// filler opener, one list item per line with "- " or "N. " markers, no
// blank lines inside the body, and a trailing follow-up question when the
// reply would otherwise end without one. Pure and deterministic.
func Format(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return text
	}

	text = stripLeadingFiller(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = bulletMarkerRe.ReplaceAllString(text, "\n- ")
	text = reflowNumbered(text)
	text = listGapRe.ReplaceAllString(text, "$1\n\n$2")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = compactLines(text)
	text = splitInlineDashes(text)
	return appendFollowUp(text)
}

// stripLeadingFiller removes a single acknowledgement word from the start of
// the text, together with one trailing punctuation mark. The word must end
// at a boundary so "Surely..." survives intact.
func stripLeadingFiller(text string) string {
	lowered := strings.ToLower(text)
	for _, word := range fillerWords {
		if !strings.HasPrefix(lowered, word) {
			continue
		}
		rest := text[len(word):]
		if rest == "" {
			return ""
		}
		switch rest[0] {
		case '!', '.', ',':
			rest = rest[1:]
		case ' ', '\t', '\n':
		default:
			continue
		}
		return strings.TrimSpace(rest)
	}
	return text
}

// reflowNumbered puts each "N." list marker at the start of its own line
// with a single space after the dot. A number followed by more digits after
// the dot is a decimal inside a sentence, not a marker.
func reflowNumbered(text string) string {
	runes := []rune(text)
	var b strings.Builder

	for i := 0; i < len(runes); {
		r := runes[i]
		if !unicode.IsDigit(r) || (i > 0 && isWordRune(runes[i-1])) {
			b.WriteRune(r)
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsDigit(runes[j]) {
			j++
		}
		if j >= len(runes) || runes[j] != '.' || (j+1 < len(runes) && unicode.IsDigit(runes[j+1])) {
			b.WriteString(string(runes[i:j]))
			i = j
			continue
		}
		if i > 0 && runes[i-1] != '\n' {
			b.WriteRune('\n')
		}
		b.WriteString(string(runes[i : j+1]))
		b.WriteRune(' ')
		i = j + 1
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
			i++
		}
	}
	return b.String()
}

// compactLines trims every line and drops the empty ones.
func compactLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// splitInlineDashes breaks "item - item" runs left over inside a line into
// bullet lines of their own.
func splitInlineDashes(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		parts := strings.Split(line, " - ")
		if len(parts) > 1 {
			lines[i] = parts[0] + "\n- " + strings.Join(parts[1:], "\n- ")
		}
	}
	return strings.Join(lines, "\n")
}

// appendFollowUp adds the fixed follow-up question when the tail of the
// reply asks nothing, unless the reply is about escalation or the outage
// fallback, or is too short to be an answer at all.
func appendFollowUp(text string) string {
	tail := text
	if len(tail) > 200 {
		tail = tail[len(tail)-200:]
	}
	if strings.Contains(tail, "?") {
		return text
	}
	lowered := strings.ToLower(text)
	if strings.Contains(lowered, "escalat") || strings.HasPrefix(lowered, "i'm having trouble") || len(text) <= 20 {
		return text
	}
	return strings.TrimRight(text, " \n") + "\n\n" + FollowUpPrompt
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
