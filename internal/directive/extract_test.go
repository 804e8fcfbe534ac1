package directive

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare",
			input: `{"type":"output","output":"hi"}`,
			want:  `{"type":"output","output":"hi"}`,
			ok:    true,
		},
		{
			name:  "surrounded by prose",
			input: `Sure thing! {"type": "action", "function": "createTodo", "input": "buy milk"} Anything else?`,
			want:  `{"type": "action", "function": "createTodo", "input": "buy milk"}`,
			ok:    true,
		},
		{
			name:  "code fence",
			input: "```json\n{\"type\":\"action\",\"function\":\"getAllTodos\",\"input\":\"\"}\n```",
			want:  `{"type":"action","function":"getAllTodos","input":""}`,
			ok:    true,
		},
		{
			name:  "first qualifying wins",
			input: `{"type":"output","output":"one"} {"type":"output","output":"two"}`,
			want:  `{"type":"output","output":"one"}`,
			ok:    true,
		},
		{
			name:  "skips unrecognized kind",
			input: `{"type":"thought","text":"hmm"} {"type":"output","output":"ok"}`,
			want:  `{"type":"output","output":"ok"}`,
			ok:    true,
		},
		{
			name:  "skips malformed",
			input: `{"type": output} then {"type":"output","output":"ok"}`,
			want:  `{"type":"output","output":"ok"}`,
			ok:    true,
		},
		{
			name:  "skips objects without type",
			input: `{"id": 1} {"type":"output","output":"ok"}`,
			want:  `{"type":"output","output":"ok"}`,
			ok:    true,
		},
		{
			name:  "braces inside strings",
			input: `{"type":"output","output":"use } and { freely"}`,
			want:  `{"type":"output","output":"use } and { freely"}`,
			ok:    true,
		},
		{
			name:  "escaped quote",
			input: `{"type":"output","output":"say \"}\" twice"}`,
			want:  `{"type":"output","output":"say \"}\" twice"}`,
			ok:    true,
		},
		{
			name:  "nested inside wrapper",
			input: `{"response": {"type":"output","output":"inner"}}`,
			want:  `{"type":"output","output":"inner"}`,
			ok:    true,
		},
		{
			name:  "stray open brace in prose",
			input: `I think { this is hard. {"type":"output","output":"ok"}`,
			want:  `{"type":"output","output":"ok"}`,
			ok:    true,
		},
		{
			name:  "type key is case sensitive",
			input: `{"TYPE":"output","output":"no"} {"type":"output","output":"ok"}`,
			want:  `{"type":"output","output":"ok"}`,
			ok:    true,
		},
		{
			name:  "stray braces on both sides",
			input: `} { {{ {"type":"output","output":"ok"} {`,
			want:  `{"type":"output","output":"ok"}`,
			ok:    true,
		},
		{
			name:  "type must be a string",
			input: `{"type": 1, "output": "x"}`,
			ok:    false,
		},
		{
			name:  "no json",
			input: `I'm not sure what you mean.`,
			ok:    false,
		},
		{
			name:  "empty",
			input: ``,
			ok:    false,
		},
		{
			name:  "unclosed",
			input: `{"type":"output","output":"never ends"`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_RecoversReencodedDirective(t *testing.T) {
	actions := []map[string]string{
		{"type": "action", "function": "createTodo", "input": "buy milk"},
		{"type": "action", "function": "searchTodo", "input": "debug {agent}"},
		{"type": "action", "function": "deleteTodoById", "input": "42"},
		{"type": "output", "output": "Consider it conquered! \U0001F680"},
	}
	prose := []struct{ before, after string }{
		{"", ""},
		{"Here you go: ", " Let me know."},
		{"Thinking...\n\n", "\n"},
		{"(braces) [brackets] ", " :}"},
	}

	for _, a := range actions {
		encoded, err := json.Marshal(a)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range prose {
			got, ok := Extract(p.before + string(encoded) + p.after)
			if !ok {
				t.Fatalf("no directive found in %q", p.before+string(encoded)+p.after)
			}
			assert.Equal(t, string(encoded), got)
		}
	}
}

func TestExtract_LargeInputs(t *testing.T) {
	const n = 20000
	directive := `{"type":"output","output":"ok"}`

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"unclosed braces", strings.Repeat("{", n), "", false},
		{"unclosed braces before directive", strings.Repeat("{", n) + directive, directive, true},
		{"deeply nested wrapper", strings.Repeat(`{"a":`, n) + directive + strings.Repeat("}", n), directive, true},
		{"many objects without type", strings.Repeat(`{"id":1} `, n) + directive, directive, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
