package ai

import (
	"context"
	"log"
	"strings"
)

const (
	summaryUnavailable = "Unable to summarize at this time."
	noSummary          = "No summary available."

	summaryMarker = "summary:"
	actionsMarker = "next_actions:"

	maxNextActions = 3
)

// SessionSummary is the parsed result of a summarization call.
type SessionSummary struct {
	Summary     string   `json:"summary"`
	NextActions []string `json:"next_actions"`
}

// SummarizeSession condenses a transcript into a one-line summary and up to
// three next actions. On any upstream failure it returns the fixed
// unavailable result instead of an error.
func (s *Service) SummarizeSession(ctx context.Context, transcript string) SessionSummary {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	response, err := s.summarize.Invoke(callCtx, map[string]any{
		"system":       summarySystemPrompt,
		"conversation": transcript,
	})
	if err != nil {
		log.Printf("[ai] summarize failed: %v", err)
		return SessionSummary{Summary: summaryUnavailable, NextActions: []string{}}
	}
	return parseSummary(response.Content)
}

// parseSummary locates the SUMMARY:/NEXT_ACTIONS: markers, falling back to
// first-line/following-lines heuristics when the model ignored the format.
func parseSummary(raw string) SessionSummary {
	text := strings.TrimSpace(raw)

	var summaryPart, actionsPart string
	if idx := strings.Index(strings.ToLower(text), summaryMarker); idx >= 0 {
		after := strings.TrimSpace(text[idx+len(summaryMarker):])
		if j := strings.Index(strings.ToLower(after), actionsMarker); j >= 0 {
			summaryPart = after[:j]
			actionsPart = after[j+len(actionsMarker):]
		} else {
			summaryPart, actionsPart = splitFirstLine(after)
		}
	} else {
		summaryPart, actionsPart = splitFirstLine(text)
	}

	summary := trimBullet(summaryPart)
	if summary == "" {
		summary = noSummary
	}

	actions := []string{}
	for _, line := range strings.Split(actionsPart, "\n") {
		if action := trimBullet(line); action != "" {
			actions = append(actions, action)
		}
	}
	if len(actions) > maxNextActions {
		actions = actions[:maxNextActions]
	}

	return SessionSummary{Summary: summary, NextActions: actions}
}

// splitFirstLine treats the first line as the summary and the next few
// lines as action candidates.
func splitFirstLine(text string) (string, string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return text, ""
	}
	rest := lines[1:]
	if len(rest) > maxNextActions {
		rest = rest[:maxNextActions]
	}
	return lines[0], strings.Join(rest, "\n")
}

func trimBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-"))
}
