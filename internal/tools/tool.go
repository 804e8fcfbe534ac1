package tools

import (
	"context"
	"sort"

	"github.com/rahul/alfred/internal/directive"
	"github.com/rahul/alfred/internal/store"
)

// Tool defines the interface for all agent capabilities.
type Tool interface {
	Name() directive.ActionName
	Description() string
	Execute(ctx context.Context, input string) (Result, error)
}

// Result is what a tool returns: Created, Listed or Deleted.
type Result interface {
	isResult()
}

// Created carries the todo inserted by createTodo.
type Created struct {
	Todo store.Todo
}

// Listed carries the todos returned by getAllTodos and searchTodo.
type Listed struct {
	Todos []store.Todo
}

// Deleted reports whether deleteTodoById removed a row.
type Deleted struct {
	OK bool
}

func (Created) isResult() {}
func (Listed) isResult() {}
func (Deleted) isResult() {}

// Registry manages the set of available tools.
type Registry struct {
	Tools map[directive.ActionName]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		Tools: make(map[directive.ActionName]Tool),
	}
}

// NewTodoRegistry registers the four todo operations against s.
func NewTodoRegistry(s TodoStore) *Registry {
	r := NewRegistry()
	r.Register(NewGetAllTodosTool(s))
	r.Register(NewCreateTodoTool(s))
	r.Register(NewDeleteTodoTool(s))
	r.Register(NewSearchTodoTool(s))
	return r
}

func (r *Registry) Register(t Tool) {
	r.Tools[t.Name()] = t
}

func (r *Registry) Get(name directive.ActionName) Tool {
	return r.Tools[name]
}

// Has implements directive.Catalog.
func (r *Registry) Has(name directive.ActionName) bool {
	_, ok := r.Tools[name]
	return ok
}

// Invoke runs the tool named by the action.
func (r *Registry) Invoke(ctx context.Context, action directive.Action) (Result, error) {
	t := r.Get(action.Name)
	if t == nil {
		return nil, &directive.UnknownActionError{Name: string(action.Name)}
	}
	return t.Execute(ctx, action.Input)
}

// List returns the registered tools sorted by name.
func (r *Registry) List() []Tool {
	list := make([]Tool, 0, len(r.Tools))
	for _, t := range r.Tools {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}
