package chat

import "time"

// Senders recorded on a message. Replies are always persisted under
// SenderClara before they are returned to the caller, so the stored
// history is exactly what the visitor saw.
const (
	SenderUser  = "user"
	SenderClara = "clara"
)

// Message is one turn of a conversation. Messages are append-only and
// ordered by CreatedAt; the timestamp carries nanosecond resolution so
// insertion order within a session survives the round trip through storage.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"timestamp"`
}
