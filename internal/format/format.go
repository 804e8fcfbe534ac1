// Package format renders tool results for the user.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/rahul/alfred/internal/directive"
	"github.com/rahul/alfred/internal/store"
	"github.com/rahul/alfred/internal/tools"
)

const (
	EmptyListMessage     = "🏖️ No todos found! Time to relax or dream up your next adventure! 🌴"
	ListTagline          = "🚀 Time to turn those todos into 'ta-das'! 💥"
	ListHeading          = "Your Epic Todo List:"
	NoMatchMessage       = "🔍 No matching todos found"
	DeletedMessage       = "✅ Task marked as completed!"
	DeleteFailedMessage  = "❌ Failed to update task"
	UnknownActionMessage = "❓ Unknown action"
)

// Display is what Format produces: a Message, a DeleteCandidate or
// DeleteCandidates.
type Display interface {
	isDisplay()
}

// Message is ready to print.
type Message string

// DeleteCandidate is the single todo a search matched.
type DeleteCandidate struct {
	ID int64
}

// DeleteCandidates are all the todos a search matched when there were
// several.
type DeleteCandidates struct {
	Todos []Summary
}

// Summary describes one matched todo.
type Summary struct {
	ID        int64     `json:"id"`
	Text      string    `json:"todo"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Message) isDisplay() {}
func (DeleteCandidate) isDisplay() {}
func (DeleteCandidates) isDisplay() {}

// IDs returns the ids of the candidates in order.
func (d DeleteCandidates) IDs() []int64 {
	ids := make([]int64, len(d.Todos))
	for i, s := range d.Todos {
		ids[i] = s.ID
	}
	return ids
}

// Format turns the result of action into a Display.
func Format(result tools.Result, action directive.Action) Display {
	switch action.Name {
	case directive.CreateTodo:
		if r, ok := result.(tools.Created); ok {
			return Message(fmt.Sprintf("Added new todo: \"%s\"", r.Todo.Content().Display()))
		}
	case directive.GetAllTodos:
		if r, ok := result.(tools.Listed); ok {
			return Message(renderList(r.Todos))
		}
	case directive.SearchTodo:
		if r, ok := result.(tools.Listed); ok {
			return searchDisplay(r.Todos)
		}
	case directive.DeleteTodoByID:
		if r, ok := result.(tools.Deleted); ok {
			if r.OK {
				return Message(DeletedMessage)
			}
			return Message(DeleteFailedMessage)
		}
	}
	return Message(UnknownActionMessage)
}

func renderList(todos []store.Todo) string {
	if len(todos) == 0 {
		return EmptyListMessage
	}
	var b strings.Builder
	b.WriteString(ListTagline)
	b.WriteString("\n\n")
	b.WriteString(ListHeading)
	for i, t := range todos {
		text := t.Content().Display()
		fmt.Fprintf(&b, "\n  %s %d. %s", Categorize(text).Glyph, i+1, text)
	}
	return b.String()
}

func searchDisplay(todos []store.Todo) Display {
	switch len(todos) {
	case 0:
		return Message(NoMatchMessage)
	case 1:
		return DeleteCandidate{ID: todos[0].ID}
	}
	summaries := make([]Summary, len(todos))
	for i, t := range todos {
		summaries[i] = Summary{ID: t.ID, Text: t.Content().Display(), CreatedAt: t.CreatedAt}
	}
	return DeleteCandidates{Todos: summaries}
}
