package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type postgresStore struct {
	db *sql.DB
}

// NewRepository returns a SessionStore backed by Postgres.
func NewRepository(db *sql.DB) SessionStore {
	return &postgresStore{db: db}
}

func (r *postgresStore) Get(ctx context.Context, id string) (*Session, error) {
	query := `SELECT id, language, conversation_stage, message_count, created_at, last_activity FROM sessions WHERE id = $1`

	var s Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Language,
		&s.Stage,
		&s.MessageCount,
		&s.CreatedAt,
		&s.LastActivity,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	messages, err := r.history(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Messages = messages
	return &s, nil
}

func (r *postgresStore) history(ctx context.Context, sessionID string) ([]Message, error) {
	query := `SELECT role, content, metadata, created_at FROM chat_messages WHERE session_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var metadataJSON []byte
		if err := rows.Scan(&m.Role, &m.Content, &metadataJSON, &m.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &m.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal message metadata: %w", err)
			}
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *postgresStore) Create(ctx context.Context, s *Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.LastActivity = time.Now()
	if s.Stage == "" {
		s.Stage = StageInitial
	}

	query := `
		INSERT INTO sessions (id, language, conversation_stage, message_count, created_at, last_activity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Language, s.Stage, s.MessageCount, s.CreatedAt, s.LastActivity)
	return err
}

func (r *postgresStore) AppendMessage(ctx context.Context, sessionID string, m Message) error {
	metadataJSON, err := json.Marshal(m.Metadata)
	if err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	query := `INSERT INTO chat_messages (session_id, role, content, metadata, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, m.Role, m.Content, metadataJSON, m.CreatedAt); err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE sessions SET last_activity = $2 WHERE id = $1`, sessionID, time.Now())
	return err
}

func (r *postgresStore) Update(ctx context.Context, sessionID string, messageCount int, stage Stage) error {
	if stage != "" {
		_, err := r.db.ExecContext(ctx,
			`UPDATE sessions SET message_count = $2, conversation_stage = $3, last_activity = $4 WHERE id = $1`,
			sessionID, messageCount, stage, time.Now())
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET message_count = $2, last_activity = $3 WHERE id = $1`,
		sessionID, messageCount, time.Now())
	return err
}

func (r *postgresStore) ClearMessages(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE session_id = $1`, sessionID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET conversation_stage = $2, last_activity = $3 WHERE id = $1`,
		sessionID, StageInitial, time.Now())
	return err
}

func (r *postgresStore) DeleteExpired(ctx context.Context, olderThan time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-olderThan)
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE session_id IN (SELECT id FROM sessions WHERE last_activity < $1)`, cutoff); err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `DELETE FROM sessions WHERE last_activity < $1 RETURNING id`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var removed []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		removed = append(removed, id)
	}
	return removed, rows.Err()
}
