// Package ai adapts the external completion service to the chat backend.
// Failures never escape: every code path resolves to either generated text
// or one of the fixed fallback strings.
package ai

import (
	"context"
	"log"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/clarahq/support-backend/internal/analysis/confidence"
	"github.com/clarahq/support-backend/internal/config"
	"github.com/clarahq/support-backend/internal/model/chat"
	"github.com/clarahq/support-backend/internal/reply"
)

// Fixed user-facing strings. Upstream errors and low-confidence replies
// always collapse to one of these; raw errors never reach the visitor.
const (
	FallbackMessage   = "I'm having trouble reaching the support system right now. Please try again later."
	EscalationMessage = "I'm escalating this issue to a human support agent. Please wait while I connect you."
)

// historyLimit caps how many stored turns are replayed to the model.
const historyLimit = 10

// fallbackDelay is a brief pause before answering with the fallback, so a
// transient upstream hiccup is not hammered by an instant retry from the UI.
const fallbackDelay = 500 * time.Millisecond

// Service runs the chat and summarization chains against one ChatModel,
// selected at construction.
type Service struct {
	cfg       config.AIConfig
	chat      compose.Runnable[map[string]any, *schema.Message]
	summarize compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the prompt chains around the supplied model.
func NewService(ctx context.Context, chatModel model.ChatModel, cfg config.AIConfig) (*Service, error) {
	chatChain, err := compileChain(ctx, chatModel, prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	))
	if err != nil {
		return nil, err
	}

	summaryChain, err := compileChain(ctx, chatModel, prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("Conversation:\n{conversation}"),
	))
	if err != nil {
		return nil, err
	}

	return &Service{cfg: cfg, chat: chatChain, summarize: summaryChain}, nil
}

func compileChain(ctx context.Context, chatModel model.ChatModel, template prompt.ChatTemplate) (compose.Runnable[map[string]any, *schema.Message], error) {
	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)
	return chain.Compile(ctx)
}

// GenerateReply answers userInput given the stored conversation. The raw
// completion is screened first, before formatting can append the follow-up
// question: low-confidence output becomes the escalation message, and any
// upstream failure becomes the fixed fallback after a brief delay.
func (s *Service) GenerateReply(ctx context.Context, history []chat.Message, userInput string) string {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	response, err := s.chat.Invoke(callCtx, map[string]any{
		"system":  claraSystemPrompt,
		"history": buildHistoryMessages(history),
		"query":   userInput,
	})
	if err != nil {
		log.Printf("[ai] generate failed: %v", err)
		time.Sleep(fallbackDelay)
		return FallbackMessage
	}

	if confidence.Low(response.Content) {
		return EscalationMessage
	}
	return reply.Format(response.Content)
}

// buildHistoryMessages maps the last stored turns onto model roles.
func buildHistoryMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	start := 0
	if len(messages) > historyLimit {
		start = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-start)
	for _, msg := range messages[start:] {
		switch msg.Sender {
		case chat.SenderUser:
			history = append(history, schema.UserMessage(msg.Text))
		case chat.SenderClara:
			history = append(history, schema.AssistantMessage(msg.Text, nil))
		}
	}
	return history
}
