package llm

import "errors"

// ErrNoJSONObject is returned when a model response carries no top-level
// JSON object at all.
var ErrNoJSONObject = errors.New("no JSON object found in response")

// ExtractObject locates the first balanced top-level {...} block in raw
// model output, tolerating prose before and after it. It is a single
// bounded scan that tracks brace depth and string/escape state, so a large
// or adversarial response costs at most one pass over the text. The result
// is the raw candidate block; callers still json.Unmarshal it.
func ExtractObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], nil
				}
			}
		}
	}

	return "", ErrNoJSONObject
}
