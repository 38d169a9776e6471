package ai

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
)

// ExtractJSON recovers a JSON value from model output that may be wrapped in
// prose or markdown fences. It parses the widest span from the first '{' to
// the last '}', or the whole text when no such span exists.
//
// Two sibling objects in one text ("{...} and {...}") produce a span that is
// not valid JSON; that case fails rather than picking one of them.
func ExtractJSON(text string) (any, error) {
	candidate := text
	if start := strings.IndexByte(text, '{'); start >= 0 {
		if end := strings.LastIndexByte(text, '}'); end > start {
			candidate = text[start : end+1]
		}
	}

	var v any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		return nil, &ParseError{Preview: truncateForLog(text, 256), Err: err}
	}
	return v, nil
}

func extractObject(text string) (map[string]any, error) {
	v, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	return obj, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// stringList returns the string entries of obj[key]. Anything that is not a
// list yields an empty, non-nil slice.
func stringList(obj map[string]any, key string) []string {
	raw, ok := obj[key].([]any)
	if !ok {
		return []string{}
	}
	return lo.FilterMap(raw, func(item any, _ int) (string, bool) {
		s, ok := item.(string)
		return s, ok
	})
}
