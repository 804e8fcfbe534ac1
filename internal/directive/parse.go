package directive

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Parse validates a candidate found by Extract and returns the typed
// directive. Errors match ErrInvalidDirective.
func Parse(candidate string, catalog Catalog) (Directive, error) {
	// Keys are matched exactly; encoding/json would also accept "FUNCTION".
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirective, err)
	}
	kind, _ := decodeString(fields["type"])

	switch Kind(kind) {
	case KindOutput:
		msg, ok := decodeString(fields["output"])
		if !ok {
			return nil, fmt.Errorf("%w: output must be a string", ErrInvalidDirective)
		}
		return Output{Message: msg}, nil

	case KindAction:
		name, ok := decodeString(fields["function"])
		if !ok {
			return nil, fmt.Errorf("%w: function must be a string", ErrInvalidDirective)
		}
		action := ActionName(name)
		if catalog == nil || !catalog.Has(action) {
			return nil, &UnknownActionError{Name: name}
		}
		input, ok := decodeInput(fields["input"])
		if !ok {
			return nil, fmt.Errorf("%w: input of %s must be a string or a number", ErrInvalidDirective, name)
		}
		if isAbsent(fields["input"]) && action != GetAllTodos {
			return nil, fmt.Errorf("%w: %s requires an input", ErrInvalidDirective, name)
		}
		return Action{Name: action, Input: input}, nil

	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidDirective, kind)
	}
}

// Interpret runs Extract and Parse on raw agent text.
func Interpret(raw string, catalog Catalog) (Directive, error) {
	candidate, ok := Extract(raw)
	if !ok {
		return nil, ErrNoDirective
	}
	return Parse(candidate, catalog)
}

func isAbsent(v json.RawMessage) bool {
	return len(v) == 0 || bytes.Equal(v, []byte("null"))
}

func decodeString(v json.RawMessage) (string, bool) {
	if isAbsent(v) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeInput accepts a string, a number (agents often emit ids unquoted)
// or nothing.
func decodeInput(v json.RawMessage) (string, bool) {
	if isAbsent(v) {
		return "", true
	}
	if s, ok := decodeString(v); ok {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return "", false
	}
	return n.String(), true
}
