package store

import (
	"encoding/json"
	"time"
)

// Todo is a single row of the todos table.
type Todo struct {
	ID        int64     `json:"id"`
	Text      string    `json:"todo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Content returns the tagged view of the todo text.
func (t Todo) Content() Content {
	return ParseContent(t.Text)
}

// ContentKind tells plain text apart from a serialized object.
type ContentKind string

const (
	ContentPlain ContentKind = "plain"
	ContentRich  ContentKind = "rich"
)

// Content is the decoded form of a todo's text. Agents sometimes store a JSON
// object such as {"description": "...", "due": "..."} instead of plain text.
type Content struct {
	Kind        ContentKind
	Raw         string
	Description string
	Fields      map[string]any
}

// ParseContent never fails; anything that is not a JSON object is plain text.
func ParseContent(raw string) Content {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return Content{Kind: ContentPlain, Raw: raw}
	}
	desc, _ := fields["description"].(string)
	return Content{Kind: ContentRich, Raw: raw, Description: desc, Fields: fields}
}

// Display is the text shown to the user.
func (c Content) Display() string {
	if c.Kind == ContentRich && c.Description != "" {
		return c.Description
	}
	return c.Raw
}

// Message is one transcript entry.
type Message struct {
	ID        int64
	ChatID    string
	Role      string
	Content   string
	Timestamp time.Time
}
