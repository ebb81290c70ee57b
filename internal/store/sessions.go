package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clarahq/support-backend/internal/model/chat"
)

// CreateSession inserts a new session and returns it.
func (s *Store) CreateSession(ctx context.Context, userLabel string) (chat.Session, error) {
	if userLabel == "" {
		userLabel = "guest"
	}
	session := chat.Session{
		ID:        uuid.NewString(),
		UserLabel: userLabel,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sessions (id, user_label, created_at_unix) VALUES (?, ?, ?)`,
		session.ID, session.UserLabel, session.CreatedAt.UnixNano(),
	)
	if err != nil {
		return chat.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// GetSession fetches a session by id, ErrSessionNotFound when missing.
func (s *Store) GetSession(ctx context.Context, id string) (chat.Session, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, user_label, created_at_unix FROM sessions WHERE id = ?`,
		id,
	)

	var session chat.Session
	var createdAt int64
	if err := row.Scan(&session.ID, &session.UserLabel, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return chat.Session{}, ErrSessionNotFound
		}
		return chat.Session{}, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = time.Unix(0, createdAt).UTC()
	return session, nil
}

// ListSessions returns every session ordered by creation time ascending.
func (s *Store) ListSessions(ctx context.Context) ([]chat.Session, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, user_label, created_at_unix FROM sessions ORDER BY created_at_unix ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []chat.Session
	for rows.Next() {
		var session chat.Session
		var createdAt int64
		if err := rows.Scan(&session.ID, &session.UserLabel, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.CreatedAt = time.Unix(0, createdAt).UTC()
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
