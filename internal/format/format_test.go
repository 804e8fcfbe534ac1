package format

import (
	"strings"
	"testing"
	"time"

	"github.com/rahul/alfred/internal/directive"
	"github.com/rahul/alfred/internal/store"
	"github.com/rahul/alfred/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func action(name directive.ActionName) directive.Action {
	return directive.Action{Name: name}
}

func TestFormat_Create(t *testing.T) {
	got := Format(tools.Created{Todo: store.Todo{ID: 1, Text: "buy milk"}}, action(directive.CreateTodo))
	assert.Equal(t, Message(`Added new todo: "buy milk"`), got)

	got = Format(tools.Created{Todo: store.Todo{ID: 2, Text: `{"description":"call mom"}`}}, action(directive.CreateTodo))
	assert.Equal(t, Message(`Added new todo: "call mom"`), got)
}

func TestFormat_ListEmpty(t *testing.T) {
	assert.Equal(t, Message(EmptyListMessage), Format(tools.Listed{}, action(directive.GetAllTodos)))
}

func TestFormat_List(t *testing.T) {
	todos := []store.Todo{
		{ID: 4, Text: "Apply for the JOB"},
		{ID: 9, Text: "record a video"},
		{ID: 10, Text: `{"description":"debug the agent","priority":"high"}`},
		{ID: 11, Text: "team meeting"},
		{ID: 12, Text: "save Gotham"},
		{ID: 13, Text: "buy milk"},
	}
	got, ok := Format(tools.Listed{Todos: todos}, action(directive.GetAllTodos)).(Message)
	require.True(t, ok)

	lines := strings.Split(string(got), "\n")
	require.Len(t, lines, 3+len(todos))
	assert.Equal(t, ListTagline, lines[0])
	assert.Equal(t, ListHeading, lines[2])
	assert.Equal(t, []string{
		"  💼 1. Apply for the JOB",
		"  🎥 2. record a video",
		"  💻 3. debug the agent",
		"  📅 4. team meeting",
		"  🦸 5. save Gotham",
		"  📝 6. buy milk",
	}, lines[3:])
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	assert.Equal(t, "work", Categorize("apply to record label").Name)
	assert.Equal(t, "code", Categorize("code review before meeting").Name)
	assert.Equal(t, DefaultCategory, Categorize("water plants"))
}

func TestFormat_Search(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, Message(NoMatchMessage), Format(tools.Listed{}, action(directive.SearchTodo)))

	single := Format(tools.Listed{Todos: []store.Todo{{ID: 7, Text: "buy milk"}}}, action(directive.SearchTodo))
	assert.Equal(t, DeleteCandidate{ID: 7}, single)

	many := Format(tools.Listed{Todos: []store.Todo{
		{ID: 3, Text: "alpha", CreatedAt: created},
		{ID: 5, Text: `{"description":"alpha beta"}`, CreatedAt: created},
	}}, action(directive.SearchTodo))
	require.IsType(t, DeleteCandidates{}, many)
	candidates := many.(DeleteCandidates)
	assert.Equal(t, []int64{3, 5}, candidates.IDs())
	assert.Equal(t, Summary{ID: 5, Text: "alpha beta", CreatedAt: created}, candidates.Todos[1])
}

func TestFormat_Delete(t *testing.T) {
	assert.Equal(t, Message(DeletedMessage), Format(tools.Deleted{OK: true}, action(directive.DeleteTodoByID)))
	assert.Equal(t, Message(DeleteFailedMessage), Format(tools.Deleted{OK: false}, action(directive.DeleteTodoByID)))
}

func TestFormat_Unknown(t *testing.T) {
	assert.Equal(t, Message(UnknownActionMessage), Format(tools.Deleted{OK: true}, action("dropTable")))
	// A result of the wrong shape for the action is not rendered.
	assert.Equal(t, Message(UnknownActionMessage), Format(tools.Deleted{OK: true}, action(directive.GetAllTodos)))
}
