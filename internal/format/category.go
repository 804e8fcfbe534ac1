package format

import "strings"

// Category tags a todo for display.
type Category struct {
	Name     string
	Glyph    string
	Keywords []string
}

// Categories are checked in order; the first with a keyword in the text wins.
var Categories = []Category{
	{Name: "work", Glyph: "💼", Keywords: []string{"job", "apply"}},
	{Name: "media", Glyph: "🎥", Keywords: []string{"video", "record"}},
	{Name: "code", Glyph: "💻", Keywords: []string{"debug", "code"}},
	{Name: "meeting", Glyph: "📅", Keywords: []string{"meeting"}},
	{Name: "hero", Glyph: "🦸", Keywords: []string{"save", "gotham"}},
}

// DefaultCategory is used when no keyword matches.
var DefaultCategory = Category{Name: "general", Glyph: "📝"}

func Categorize(text string) Category {
	lower := strings.ToLower(text)
	for _, c := range Categories {
		for _, kw := range c.Keywords {
			if strings.Contains(lower, kw) {
				return c
			}
		}
	}
	return DefaultCategory
}
