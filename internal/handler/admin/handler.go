// Package admin exposes the operator-facing export surface.
package admin

import (
	"encoding/csv"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clarahq/support-backend/internal/store"
	"github.com/clarahq/support-backend/pkg/utils"
)

var csvHeader = []string{
	"session_id", "user_label", "created_at", "message_id", "sender", "text", "timestamp",
}

// Handler serves the admin CSV export.
type Handler struct {
	store *store.Store
}

// New creates the admin handler.
func New(st *store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes mounts the admin routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/sessions.csv", h.handleExportCSV)
}

// handleExportCSV streams every session with its messages as CSV. A session
// without messages still gets one row, with the message fields empty.
func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListSessions(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load sessions")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="clara_sessions.csv"`)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		log.Printf("[admin] write csv header: %v", err)
		return
	}

	for _, session := range sessions {
		messages, err := h.store.ListMessages(r.Context(), session.ID)
		if err != nil {
			log.Printf("[admin] list messages for %s: %v", session.ID, err)
			return
		}

		createdAt := session.CreatedAt.UTC().Format(time.RFC3339Nano)
		if len(messages) == 0 {
			if err := writer.Write([]string{session.ID, session.UserLabel, createdAt, "", "", "", ""}); err != nil {
				log.Printf("[admin] write csv row: %v", err)
				return
			}
			continue
		}

		for _, message := range messages {
			row := []string{
				session.ID,
				session.UserLabel,
				createdAt,
				message.ID,
				message.Sender,
				strings.ReplaceAll(message.Text, "\n", " "),
				message.CreatedAt.UTC().Format(time.RFC3339Nano),
			}
			if err := writer.Write(row); err != nil {
				log.Printf("[admin] write csv row: %v", err)
				return
			}
		}
	}
}
