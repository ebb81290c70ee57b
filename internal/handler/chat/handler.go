package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	chatservice "github.com/clarahq/support-backend/internal/service/chat"
	"github.com/clarahq/support-backend/pkg/utils"
)

// Handler serves the chat endpoint.
type Handler struct {
	chatSvc *chatservice.Service
}

// New creates the chat handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes mounts the chat route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	// A missing or malformed body is treated like an empty message.
	_ = json.NewDecoder(r.Body).Decode(&payload)

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "Empty message")
		return
	}

	reply, sessionID, err := h.chatSvc.ProcessMessage(r.Context(), payload.SessionID, message)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"reply":      reply,
		"session_id": sessionID,
	})
}
