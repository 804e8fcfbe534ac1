package directive

import (
	"encoding/json"
	"sort"
)

// Extract returns the first JSON object in raw whose "type" is a recognized
// directive kind. The object is returned verbatim. Surrounding prose, code
// fences, malformed objects and objects of other shapes are skipped; when an
// object does not qualify, the objects nested inside it are tried.
func Extract(raw string) (string, bool) {
	for _, sp := range objectSpans(raw) {
		if !sp.typed {
			continue
		}
		if c := raw[sp.start : sp.end+1]; isDirective(c) {
			return c, true
		}
	}
	return "", false
}

func isDirective(candidate string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return false
	}
	kind, ok := decodeString(fields["type"])
	return ok && Kind(kind).Valid()
}

// span is a balanced {...} region. typed is set when a "type" string occurs
// directly inside it, outside any nested object.
type span struct {
	start, end int
	typed      bool
}

// objectSpans finds every balanced {...} span of s in a single pass and
// orders them by start, so an enclosing object precedes the ones nested in
// it. Quotes open JSON strings only inside an object, and braces inside
// strings are ignored. An opening brace that is never closed is dropped
// without hiding the objects after it. Iterating bytes is safe because UTF-8
// never uses ASCII bytes inside multi-byte sequences.
func objectSpans(s string) []span {
	var spans []span
	var open []span
	inString := false
	escaped := false
	strStart := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
				if s[strStart:i+1] == `"type"` {
					open[len(open)-1].typed = true
				}
			}
			continue
		}
		switch ch {
		case '"':
			if len(open) > 0 {
				inString = true
				strStart = i
			}
		case '{':
			open = append(open, span{start: i})
		case '}':
			if n := len(open); n > 0 {
				sp := open[n-1]
				sp.end = i
				spans = append(spans, sp)
				open = open[:n-1]
			}
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}
