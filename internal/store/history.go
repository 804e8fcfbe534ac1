package store

import (
	"context"
	"fmt"
	"time"
)

// AddMessage appends one transcript entry.
func (s *Store) AddMessage(ctx context.Context, chatID string, role string, content string) error {
	query := `INSERT INTO messages (chat_id, role, content, timestamp) VALUES (?, ?, ?, ?)`
	if _, err := s.DB.ExecContext(ctx, query, chatID, role, content, formatTime(time.Now())); err != nil {
		return fmt.Errorf("add message: %w", err)
	}
	return nil
}

// GetHistory returns the last limit messages of a chat, oldest first.
func (s *Store) GetHistory(ctx context.Context, chatID string, limit int) ([]Message, error) {
	query := `SELECT id, chat_id, role, content, timestamp FROM messages WHERE chat_id = ? ORDER BY id DESC LIMIT ?`
	rows, err := s.DB.QueryContext(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var history []Message
	for rows.Next() {
		var m Message
		var ts string
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Timestamp = parseTime(ts)
		history = append(history, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	// Reverse to get chronological order
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	return history, nil
}
