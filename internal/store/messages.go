package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clarahq/support-backend/internal/model/chat"
)

// AppendMessage stores one turn of a conversation. Missing id and timestamp
// are filled in; messages are never updated or deleted afterwards.
func (s *Store) AppendMessage(ctx context.Context, message chat.Message) (chat.Message, error) {
	if message.SessionID == "" {
		return chat.Message{}, ErrSessionNotFound
	}
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO messages (id, session_id, sender, text, created_at_unix)
		 VALUES (?, ?, ?, ?, ?)`,
		message.ID, message.SessionID, message.Sender, message.Text, message.CreatedAt.UnixNano(),
	)
	if err != nil {
		return chat.Message{}, fmt.Errorf("append message: %w", err)
	}
	return message, nil
}

// ListMessages returns the full history of a session, oldest first.
func (s *Store) ListMessages(ctx context.Context, sessionID string) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, session_id, sender, text, created_at_unix
		 FROM messages WHERE session_id = ? ORDER BY created_at_unix ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var message chat.Message
		var createdAt int64
		if err := rows.Scan(&message.ID, &message.SessionID, &message.Sender, &message.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		message.CreatedAt = time.Unix(0, createdAt).UTC()
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
