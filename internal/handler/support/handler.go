// Package support serves the human-handoff surface: session summaries and
// escalation tickets.
package support

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clarahq/support-backend/internal/service/ai"
	chatservice "github.com/clarahq/support-backend/internal/service/chat"
	"github.com/clarahq/support-backend/internal/store"
	"github.com/clarahq/support-backend/pkg/utils"
)

// Handler serves /summarize and /escalate.
type Handler struct {
	store *store.Store
	aiSvc *ai.Service
}

// New creates the support handler.
func New(st *store.Store, aiSvc *ai.Service) *Handler {
	return &Handler{store: st, aiSvc: aiSvc}
}

// RegisterRoutes mounts the support routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/summarize", h.handleSummarize)
	r.Post("/escalate", h.handleEscalate)
}

func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id required")
		return
	}

	session, err := h.store.GetSession(r.Context(), payload.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, "session not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	messages, err := h.store.ListMessages(r.Context(), session.ID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}

	result := h.aiSvc.SummarizeSession(r.Context(), chatservice.Transcript(messages))
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleEscalate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
		Summary   string `json:"summary"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	sessionID := ""
	if payload.SessionID != "" {
		session, err := h.store.GetSession(r.Context(), payload.SessionID)
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				utils.RespondError(w, http.StatusNotFound, "session not found")
				return
			}
			utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
			return
		}
		sessionID = session.ID
	}

	summary := strings.TrimSpace(payload.Summary)
	if summary == "" && sessionID != "" {
		messages, err := h.store.ListMessages(r.Context(), sessionID)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "failed to load messages")
			return
		}
		summary = h.aiSvc.SummarizeSession(r.Context(), chatservice.Transcript(messages)).Summary
	}

	t, err := h.store.CreateTicket(r.Context(), sessionID, summary)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create ticket")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"ticket_id": t.ID,
		"status":    t.Status,
		"summary":   t.Summary,
	})
}
