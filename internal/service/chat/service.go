// Package chat orchestrates one support turn: persist the user message, run
// the intent heuristics against session state, fall back to the completion
// service, and persist the reply before returning it.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clarahq/support-backend/internal/model/chat"
	"github.com/clarahq/support-backend/internal/model/faq"
	"github.com/clarahq/support-backend/internal/reply"
	"github.com/clarahq/support-backend/internal/service/ai"
	"github.com/clarahq/support-backend/internal/store"
)

// Store is the slice of the conversation store this service needs.
type Store interface {
	CreateSession(ctx context.Context, userLabel string) (chat.Session, error)
	GetSession(ctx context.Context, id string) (chat.Session, error)
	AppendMessage(ctx context.Context, message chat.Message) (chat.Message, error)
	ListMessages(ctx context.Context, sessionID string) ([]chat.Message, error)
}

// Service is the intent router.
type Service struct {
	store Store
	faqs  faq.Store
	ai    *ai.Service
}

// NewService wires the router to its collaborators.
func NewService(store Store, faqs faq.Store, aiSvc *ai.Service) *Service {
	return &Service{store: store, faqs: faqs, ai: aiSvc}
}

// ProcessMessage handles one incoming user message and returns Clara's reply
// together with the session id (freshly created when the caller supplied
// none, or an unknown one).
func (s *Service) ProcessMessage(ctx context.Context, sessionID, text string) (string, string, error) {
	session, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return "", "", err
	}

	userMsg := chat.Message{SessionID: session.ID, Sender: chat.SenderUser, Text: text}
	if _, err := s.store.AppendMessage(ctx, userMsg); err != nil {
		return "", "", err
	}

	// History is re-read after the append so the heuristics and the LLM
	// context both see the current turn.
	history, err := s.store.ListMessages(ctx, session.ID)
	if err != nil {
		return "", "", err
	}
	entries := s.faqs.Load()

	answer := s.route(ctx, text, history, entries)

	if _, err := s.store.AppendMessage(ctx, chat.Message{
		SessionID: session.ID,
		Sender:    chat.SenderClara,
		Text:      answer,
	}); err != nil {
		return "", "", err
	}
	return answer, session.ID, nil
}

// route evaluates the heuristics in strict priority order; first match wins.
func (s *Service) route(ctx context.Context, text string, history []chat.Message, entries []faq.Entry) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	if answer, ok := matchOfferingsIntent(lowered, entries); ok {
		return answer
	}
	if answer, ok := matchConfirmationFollowUp(lowered, history, entries); ok {
		return answer
	}
	if answer, ok := matchServiceSelector(lowered, entries); ok {
		return answer
	}
	if answer, ok := matchQuickKeyword(lowered, entries); ok {
		return answer
	}
	if entry, ok := faq.BestMatch(text, entries, faq.DefaultThreshold); ok {
		return reply.ResolvePlaceholders(entry.Answer, entries)
	}

	generated := s.ai.GenerateReply(ctx, history, text)
	return reply.ResolvePlaceholders(generated, entries)
}

// resolveSession loads the session when the id is known and creates a fresh
// one otherwise. An unknown id yields a new session rather than an error.
func (s *Service) resolveSession(ctx context.Context, sessionID string) (chat.Session, error) {
	if sessionID != "" {
		session, err := s.store.GetSession(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, store.ErrSessionNotFound) {
			return chat.Session{}, err
		}
	}
	session, err := s.store.CreateSession(ctx, "guest")
	if err != nil {
		return chat.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Transcript renders a message history as "sender: text" lines for the
// summarization prompt.
func Transcript(messages []chat.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Text))
	}
	return strings.Join(lines, "\n")
}
