package gemini

import (
	"testing"

	"cloud.google.com/go/vertexai/genai"
)

func TestToSchema(t *testing.T) {
	in := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"claridad": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"nota":  map[string]any{"type": "integer", "description": "0-10"},
					"razon": map[string]any{"type": "string"},
				},
				"required": []any{"nota", "razon"},
			},
		},
		"required":             []string{"claridad"},
		"additionalProperties": false,
	}

	got, err := ToSchema(in)
	if err != nil {
		t.Fatalf("ToSchema: %v", err)
	}
	if got.Type != genai.TypeObject || len(got.Required) != 1 {
		t.Fatalf("unexpected root %+v", got)
	}
	crit := got.Properties["claridad"]
	if crit == nil || crit.Type != genai.TypeObject {
		t.Fatalf("missing nested object")
	}
	if crit.Properties["nota"].Type != genai.TypeInteger || crit.Properties["nota"].Description != "0-10" {
		t.Fatalf("unexpected nota schema %+v", crit.Properties["nota"])
	}
	if len(crit.Required) != 2 {
		t.Fatalf("expected nested required, got %v", crit.Required)
	}
}

func TestToSchemaRejectsUnknownType(t *testing.T) {
	if _, err := ToSchema(map[string]any{"type": "null"}); err == nil {
		t.Fatalf("expected error")
	}
}
