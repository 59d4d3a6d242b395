package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func problemSchema() *Schema {
	return &Schema{
		Name:        "test-math-problem",
		Description: "A multiple-choice problem",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":    map[string]any{"type": "string"},
				"options":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"answer":      map[string]any{"type": "string"},
				"explanation": map[string]any{"type": "string"},
			},
			"required": []string{"question", "options", "answer", "explanation"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"3+4=?","options":["6","7","8","9"],"answer":"7","explanation":"数一数"}`, false},
		{"extra fields allowed", `{"question":"q","options":[],"answer":"a","explanation":"e","category":"addition"}`, false},
		{"missing answer", `{"question":"q","options":["a"],"explanation":"e"}`, true},
		{"options not array", `{"question":"q","options":"a,b","answer":"a","explanation":"e"}`, true},
		{"not json", `这不是JSON`, true},
		{"truncated", `{"question":"q"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(problemSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
			if string(inv.Content) != tt.raw {
				t.Fatalf("expected offending content to be kept, got %s", inv.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got: %v", err)
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	s := problemSchema()
	s.Name = "test-cache-probe"
	raw := json.RawMessage(`{"question":"q","options":["a"],"answer":"a","explanation":"e"}`)

	if err := validateResponse(s, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := schemaCache.Load(s.Name); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
