package chat

import "time"

// Session groups the messages and tickets of one support conversation.
// Sessions are created lazily on the first message of a visitor.
type Session struct {
	ID        string    `json:"id"`
	UserLabel string    `json:"user_label"`
	CreatedAt time.Time `json:"created_at"`
}
