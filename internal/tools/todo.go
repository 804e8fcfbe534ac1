package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rahul/alfred/internal/directive"
	"github.com/rahul/alfred/internal/store"
)

// TodoStore is the persistence the todo tools need.
type TodoStore interface {
	ListTodos(ctx context.Context) ([]store.Todo, error)
	CreateTodo(ctx context.Context, text string) (store.Todo, error)
	DeleteTodo(ctx context.Context, id int64) (bool, error)
	SearchTodos(ctx context.Context, keywords []string) ([]store.Todo, error)
}

type GetAllTodosTool struct {
	Store TodoStore
}

func NewGetAllTodosTool(s TodoStore) *GetAllTodosTool {
	return &GetAllTodosTool{Store: s}
}

func (t *GetAllTodosTool) Name() directive.ActionName {
	return directive.GetAllTodos
}

func (t *GetAllTodosTool) Description() string {
	return "Retrieves all to-do items. Input is ignored."
}

func (t *GetAllTodosTool) Execute(ctx context.Context, _ string) (Result, error) {
	todos, err := t.Store.ListTodos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return Listed{Todos: todos}, nil
}

type CreateTodoTool struct {
	Store TodoStore
}

func NewCreateTodoTool(s TodoStore) *CreateTodoTool {
	return &CreateTodoTool{Store: s}
}

func (t *CreateTodoTool) Name() directive.ActionName {
	return directive.CreateTodo
}

func (t *CreateTodoTool) Description() string {
	return "Adds a new to-do item. Input is the task description."
}

func (t *CreateTodoTool) Execute(ctx context.Context, input string) (Result, error) {
	todo, err := t.Store.CreateTodo(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return Created{Todo: todo}, nil
}

type DeleteTodoTool struct {
	Store TodoStore
}

func NewDeleteTodoTool(s TodoStore) *DeleteTodoTool {
	return &DeleteTodoTool{Store: s}
}

func (t *DeleteTodoTool) Name() directive.ActionName {
	return directive.DeleteTodoByID
}

func (t *DeleteTodoTool) Description() string {
	return "Removes a to-do item. Input is the numeric id of the item."
}

// Execute reports a malformed id the same way as a missing row.
func (t *DeleteTodoTool) Execute(ctx context.Context, input string) (Result, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return Deleted{OK: false}, nil
	}
	ok, err := t.Store.DeleteTodo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}
	return Deleted{OK: ok}, nil
}

type SearchTodoTool struct {
	Store TodoStore
}

func NewSearchTodoTool(s TodoStore) *SearchTodoTool {
	return &SearchTodoTool{Store: s}
}

func (t *SearchTodoTool) Name() directive.ActionName {
	return directive.SearchTodo
}

func (t *SearchTodoTool) Description() string {
	return "Searches to-do items. Every whitespace-separated keyword of the input must appear in the item, ignoring case."
}

func (t *SearchTodoTool) Execute(ctx context.Context, input string) (Result, error) {
	todos, err := t.Store.SearchTodos(ctx, strings.Fields(input))
	if err != nil {
		return nil, fmt.Errorf("failed to search todos: %w", err)
	}
	return Listed{Todos: todos}, nil
}
