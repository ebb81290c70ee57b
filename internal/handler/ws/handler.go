// Package ws relays chat turns over a websocket, for the embedded support
// widget. Each inbound frame is one user message; each outbound frame is
// Clara's reply. Semantics match POST /chat.
package ws

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatservice "github.com/clarahq/support-backend/internal/service/chat"
)

// Handler upgrades connections and pumps chat turns.
type Handler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(chatSvc *chatservice.Service) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundFrame struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type outboundFrame struct {
	Reply     string `json:"reply,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// The session id sticks to the connection after the first turn, so the
	// widget can omit it on subsequent frames.
	sessionID := ""

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed: %v", err)
			}
			return
		}

		if frame.SessionID != "" {
			sessionID = frame.SessionID
		}

		if frame.Message == "" {
			if err := conn.WriteJSON(outboundFrame{Error: "Empty message"}); err != nil {
				return
			}
			continue
		}

		reply, sid, err := h.chatSvc.ProcessMessage(r.Context(), sessionID, frame.Message)
		if err != nil {
			log.Printf("[ws] process message: %v", err)
			if err := conn.WriteJSON(outboundFrame{Error: "failed to process message"}); err != nil {
				return
			}
			continue
		}
		sessionID = sid

		if err := conn.WriteJSON(outboundFrame{Reply: reply, SessionID: sid}); err != nil {
			return
		}
	}
}
