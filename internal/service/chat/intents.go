package chat

import (
	"regexp"
	"strings"

	"github.com/clarahq/support-backend/internal/model/chat"
	"github.com/clarahq/support-backend/internal/model/faq"
	"github.com/clarahq/support-backend/internal/reply"
)

// Canonical FAQ questions the quick intents map onto.
const (
	offeringsQuestion = "What cloud offerings do you have"
	service1Question  = "Tell me about Managed Cloud Hosting"
	service2Question  = "Tell me about Virtual Private Servers (VPS)"
	service3Question  = "Tell me about Public Cloud Services"
)

// offeringsFollowUpCue is the fragment of Clara's offerings answer that
// marks a pending "would you like to know more" question.
const offeringsFollowUpCue = "would you like to know about our specific cloud"

// ServiceSelectionPrompt replaces the offerings paragraph when the visitor
// keeps answering with a bare confirmation, so the same text is never sent
// twice in a row. It bypasses the placeholder resolver on purpose: the
// service names in it are menu labels, not placeholders to expand.
const ServiceSelectionPrompt = "I listed several cloud solutions. Please choose which you'd like to explore:\n\n" +
	"1. Managed Cloud Hosting\n" +
	"2. Virtual Private Servers (VPS)\n" +
	"3. Public Cloud Services\n\n" +
	`Reply with "service 1", "service 2", or "service 3" to get details.`

// confirmations are the bare yes-words heuristic 2 reacts to.
var confirmations = map[string]struct{}{
	"yes": {}, "y": {}, "sure": {}, "ok": {}, "okay": {},
}

var serviceSelectorRe = regexp.MustCompile(`^service\s*(\d+)`)

var serviceQuestions = map[string]string{
	"1": service1Question,
	"2": service2Question,
	"3": service3Question,
}

// quickKeywords is the substring→question table of heuristic 4, checked in
// this order.
var quickKeywords = []struct {
	word     string
	question string
}{
	{"managed", service1Question},
	{"managed hosting", service1Question},
	{"managed cloud", service1Question},
	{"vps", service2Question},
	{"virtual private server", service2Question},
	{"public", service3Question},
	{"public cloud", service3Question},
	{"cloud offering", offeringsQuestion},
	{"cloud offerings", offeringsQuestion},
}

// matchOfferingsIntent answers an explicit question about the cloud
// offerings with the umbrella FAQ entry.
func matchOfferingsIntent(lowered string, entries []faq.Entry) (string, bool) {
	asked := strings.Contains(lowered, "cloud offering") ||
		(strings.Contains(lowered, "tell me about") && strings.Contains(lowered, "cloud"))
	if !asked {
		return "", false
	}
	entry, ok := findQuestionPrefix(entries, "what cloud")
	if !ok {
		return "", false
	}
	return reply.ResolvePlaceholders(entry.Answer, entries), true
}

// matchConfirmationFollowUp handles a bare "yes" after Clara asked whether
// the visitor wants to hear about the offerings. A second consecutive
// confirmation gets the selection prompt instead of the same paragraph
// again; so does every later one.
func matchConfirmationFollowUp(lowered string, history []chat.Message, entries []faq.Entry) (string, bool) {
	if !isConfirmation(lowered) {
		return "", false
	}
	if !strings.Contains(strings.ToLower(lastText(history, chat.SenderClara, 0)), offeringsFollowUpCue) {
		return "", false
	}
	entry, ok := findQuestionPrefix(entries, "what cloud offerings")
	if !ok {
		return "", false
	}

	// The current user turn is already in history, so offset 1 is the turn
	// before it.
	previous := strings.ToLower(strings.TrimSpace(lastText(history, chat.SenderUser, 1)))
	if isConfirmation(previous) {
		return ServiceSelectionPrompt, true
	}
	return reply.ResolvePlaceholders(entry.Answer, entries), true
}

// matchServiceSelector resolves "service N" selections from the menu.
func matchServiceSelector(lowered string, entries []faq.Entry) (string, bool) {
	if !strings.HasPrefix(lowered, "service") {
		return "", false
	}
	m := serviceSelectorRe.FindStringSubmatch(lowered)
	if m == nil {
		return "", false
	}
	question, ok := serviceQuestions[m[1]]
	if !ok {
		return "", false
	}
	entry, ok := findQuestionExact(entries, question)
	if !ok {
		return "", false
	}
	return reply.ResolvePlaceholders(entry.Answer, entries), true
}

// matchQuickKeyword answers on a plain substring hit in the keyword table.
func matchQuickKeyword(lowered string, entries []faq.Entry) (string, bool) {
	for _, kw := range quickKeywords {
		if !strings.Contains(lowered, kw.word) {
			continue
		}
		if entry, ok := findQuestionExact(entries, kw.question); ok {
			return reply.ResolvePlaceholders(entry.Answer, entries), true
		}
	}
	return "", false
}

func isConfirmation(lowered string) bool {
	_, ok := confirmations[lowered]
	return ok
}

// lastText returns the text of the most recent message by sender, skipping
// the given number of matches from the end.
func lastText(history []chat.Message, sender string, skip int) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Sender != sender {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		return history[i].Text
	}
	return ""
}

func findQuestionPrefix(entries []faq.Entry, prefix string) (faq.Entry, bool) {
	for _, entry := range entries {
		if strings.HasPrefix(strings.ToLower(entry.Question), prefix) {
			return entry, true
		}
	}
	return faq.Entry{}, false
}

func findQuestionExact(entries []faq.Entry, question string) (faq.Entry, bool) {
	for _, entry := range entries {
		if strings.EqualFold(entry.Question, question) {
			return entry, true
		}
	}
	return faq.Entry{}, false
}
