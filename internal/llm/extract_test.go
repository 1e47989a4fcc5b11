package llm_test

import (
	"encoding/json"
	"testing"

	"github.com/rgriss/aimanifesto/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare object",
			input:    `{"valid": true}`,
			expected: `{"valid": true}`,
		},
		{
			name:     "object wrapped in prose",
			input:    "Sure! Here is the JSON you asked for:\n{\"valid\": true, \"reason\": \"ok\"}\nLet me know if you need anything else.",
			expected: `{"valid": true, "reason": "ok"}`,
		},
		{
			name:     "nested objects",
			input:    `prefix {"tool": {"name": "X"}, "intelligence": {"founded_year": 2021}} suffix`,
			expected: `{"tool": {"name": "X"}, "intelligence": {"founded_year": 2021}}`,
		},
		{
			name:     "braces inside string values",
			input:    `{"reason": "literal } brace and { another"}`,
			expected: `{"reason": "literal } brace and { another"}`,
		},
		{
			name:     "escaped quote inside string",
			input:    `{"reason": "she said \"hi\" }"}`,
			expected: `{"reason": "she said \"hi\" }"}`,
		},
		{
			name:    "no object at all",
			input:   "I could not produce JSON for that request.",
			wantErr: true,
		},
		{
			name:    "unbalanced object",
			input:   `{"valid": true`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := llm.ExtractObject(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, llm.ErrNoJSONObject)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractObjectRoundTrips(t *testing.T) {
	raw := "Here is your research:\n```json\n{\"tool\": {\"name\": \"Cursor\"}}\n```"
	block, err := llm.ExtractObject(raw)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(block), &decoded))
	assert.Contains(t, decoded, "tool")
}
