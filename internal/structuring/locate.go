package structuring

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

var fence = regexp.MustCompile("```[A-Za-z0-9_-]*")

// LocateJSON finds the largest bracketed substring of reply that parses as
// JSON. Markdown code fences are removed first. No repair is attempted.
func LocateJSON(reply string) (string, error) {
	text := fence.ReplaceAllString(reply, "")
	candidates := balancedSpans(text)
	candidates = append(candidates, outerSpan(text, '{', '}'), outerSpan(text, '[', ']'))

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if json.Valid([]byte(c)) {
			return c, nil
		}
	}
	return "", ErrUnparsableReply
}

// outerSpan returns text from the first open to the last close, or "".
func outerSpan(text string, opener, closer byte) string {
	start := strings.IndexByte(text, opener)
	end := strings.LastIndexByte(text, closer)
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// balancedSpans returns every top-level {...} or [...] run whose brackets
// match, skipping brackets inside JSON strings.
func balancedSpans(text string) []string {
	var (
		spans    []string
		stack    []byte
		start    int
		inString bool
		escaped  bool
	)
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if len(stack) > 0 && inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if len(stack) > 0 {
				inString = true
			}
		case '{', '[':
			if len(stack) == 0 {
				start = i
			}
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) == 0 {
				continue
			}
			want := byte('{')
			if ch == ']' {
				want = '['
			}
			if stack[len(stack)-1] != want {
				stack = stack[:0]
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				spans = append(spans, text[start:i+1])
			}
		}
	}
	return spans
}
