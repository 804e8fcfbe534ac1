package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

const todoColumns = `id, todo, created_at, updated_at`

// ListTodos returns every todo in insertion order.
func (s *Store) ListTodos(ctx context.Context) ([]Todo, error) {
	return s.queryTodos(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id`)
}

// CreateTodo inserts a todo and returns it with its assigned id.
func (s *Store) CreateTodo(ctx context.Context, text string) (Todo, error) {
	now := time.Now().UTC()
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO todos (todo, created_at, updated_at) VALUES (?, ?, ?)`,
		text, formatTime(now), formatTime(now))
	if err != nil {
		return Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	return Todo{ID: id, Text: text, CreatedAt: now, UpdatedAt: now}, nil
}

// DeleteTodo removes the todo with the given id. It reports whether a row
// was removed; a missing row is not an error.
func (s *Store) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete todo %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete todo %d: %w", id, err)
	}
	return n > 0, nil
}

// SearchTodos returns the todos whose text contains every keyword,
// ignoring case. Case is folded in Go with full Unicode rules since SQLite's
// LIKE only folds ASCII. With no keywords every todo matches.
func (s *Store) SearchTodos(ctx context.Context, keywords []string) ([]Todo, error) {
	todos, err := s.ListTodos(ctx)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	folded := make([]string, len(keywords))
	for i, kw := range keywords {
		folded[i] = fold.String(kw)
	}

	var matches []Todo
	for _, t := range todos {
		if containsAll(fold.String(t.Text), folded) {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

func (s *Store) queryTodos(ctx context.Context, query string, args ...any) ([]Todo, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		var created, updated string
		if err := rows.Scan(&t.ID, &t.Text, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		t.CreatedAt = parseTime(created)
		t.UpdatedAt = parseTime(updated)
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	return todos, nil
}
