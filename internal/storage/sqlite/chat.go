package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/lifecal/internal/models"
)

// AppendChatMessage adds msg at the end of the transcript.
func (s *Store) AppendChatMessage(ctx context.Context, msg models.ChatMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, seq, role, content, timestamp)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM chat_messages), ?, ?, ?)`,
		msg.ID, string(msg.Role), msg.Content, msg.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// ListChatMessages returns the transcript in insertion order.
func (s *Store) ListChatMessages(ctx context.Context) ([]models.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, role, content, timestamp FROM chat_messages ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		var role, ts string
		if err := rows.Scan(&m.ID, &role, &m.Content, &ts); err != nil {
			return nil, err
		}
		m.Role = models.Role(role)
		if m.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parsing timestamp of message %s: %w", m.ID, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *Store) ClearChat(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chat_messages")
	return err
}
