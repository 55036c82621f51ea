package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Models are told not to wrap their output in markdown fences, but they do
// it anyway. The helpers in this file repair the two recurring shape
// problems: fenced payloads and arrays wrapped in an enclosing object. They
// are total; invalid JSON is left for the caller's own decode to reject.

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// StripFences removes markdown code fences around a payload, keeping the
// interior content. It is a no-op on unfenced text and idempotent.
func StripFences(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, "$1"))
}

// CoerceToArray returns data unchanged when it already encodes a JSON
// array. When it encodes an object, the value of the first member (in
// document order) that is itself an array is returned. Anything else
// yields an empty array.
func CoerceToArray(data []byte) []byte {
	empty := []byte("[]")

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return empty
	}

	switch trimmed[0] {
	case '[':
		return trimmed
	case '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil { // opening brace
			return empty
		}
		for dec.More() {
			if _, err := dec.Token(); err != nil { // member key
				return empty
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return empty
			}
			if inner := bytes.TrimSpace(raw); len(inner) > 0 && inner[0] == '[' {
				return inner
			}
		}
	}

	return empty
}

// flattenExample coerces one clarification example to a string. Strings
// pass through. Objects are flattened to "key: value" pairs joined by
// " | " in the order the model supplied them, skipping null members and
// joining nested array values with ", ". Anything else is stringified.
func flattenExample(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
		return string(trimmed)
	case '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil {
			return string(trimmed)
		}
		var parts []string
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				break
			}
			key, _ := keyTok.(string)
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				break
			}
			if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", key, stringifyValue(value)))
		}
		return strings.Join(parts, " | ")
	default:
		return stringifyValue(trimmed)
	}
}

func stringifyValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, stringifyValue(item))
			}
			return strings.Join(parts, ", ")
		}
	}

	return string(trimmed)
}
