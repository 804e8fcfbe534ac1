// Package directive turns untrusted agent text into a typed instruction.
//
// An agent reply is expected to embed exactly one JSON object of the form
//
//	{"type":"output","output":"<message>"}
//	{"type":"action","function":"<action>","input":"<argument>"}
//
// anywhere in otherwise free text. Extract finds it, Parse validates it.
package directive

import (
	"errors"
	"fmt"
)

// Kind is the value of the "type" field.
type Kind string

const (
	KindOutput Kind = "output"
	KindAction Kind = "action"
)

// Valid reports whether k is one of the two recognized directive kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindOutput, KindAction:
		return true
	default:
		return false
	}
}

// ActionName names an operation of the tool registry.
type ActionName string

const (
	GetAllTodos    ActionName = "getAllTodos"
	CreateTodo     ActionName = "createTodo"
	DeleteTodoByID ActionName = "deleteTodoById"
	SearchTodo     ActionName = "searchTodo"
)

// Directive is either an Output or an Action.
type Directive interface {
	Kind() Kind
	isDirective()
}

// Output is terminal: its message is shown to the user as is.
type Output struct {
	Message string
}

func (Output) Kind() Kind { return KindOutput }
func (Output) isDirective() {}

// Action invokes a registry operation with a single text argument.
type Action struct {
	Name  ActionName
	Input string
}

func (Action) Kind() Kind { return KindAction }
func (Action) isDirective() {}

// Catalog answers whether an action is registered.
type Catalog interface {
	Has(name ActionName) bool
}

var (
	ErrNoDirective      = errors.New("no directive found")
	ErrInvalidDirective = errors.New("invalid directive")
)

// UnknownActionError is returned for an action the catalog does not know.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Name)
}

func (e *UnknownActionError) Is(target error) bool {
	return target == ErrInvalidDirective
}
