package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clarahq/support-backend/internal/model/ticket"
)

// CreateTicket records an escalation. sessionID may be empty for tickets
// raised outside a conversation.
func (s *Store) CreateTicket(ctx context.Context, sessionID, summary string) (ticket.Ticket, error) {
	t := ticket.Ticket{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Status:    ticket.StatusOpen,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}

	var session sql.NullString
	if sessionID != "" {
		session = sql.NullString{String: sessionID, Valid: true}
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO tickets (id, session_id, status, summary, created_at_unix)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, session, t.Status, t.Summary, t.CreatedAt.UnixNano(),
	)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return t, nil
}

// GetTicket fetches a ticket by id.
func (s *Store) GetTicket(ctx context.Context, id string) (ticket.Ticket, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, session_id, status, summary, assignee, created_at_unix
		 FROM tickets WHERE id = ?`,
		id,
	)

	var t ticket.Ticket
	var session, assignee sql.NullString
	var createdAt int64
	if err := row.Scan(&t.ID, &session, &t.Status, &t.Summary, &assignee, &createdAt); err != nil {
		return ticket.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	t.SessionID = session.String
	t.Assignee = assignee.String
	t.CreatedAt = time.Unix(0, createdAt).UTC()
	return t, nil
}
