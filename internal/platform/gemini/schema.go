package gemini

import (
	"fmt"

	"cloud.google.com/go/vertexai/genai"
)

// ToSchema converts the JSON-Schema subset used by the scorer (object, array,
// string, integer, number, boolean with properties/required/items/description)
// into a Vertex response schema.
func ToSchema(in map[string]any) (*genai.Schema, error) {
	if in == nil {
		return nil, nil
	}
	out := &genai.Schema{}

	switch t, _ := in["type"].(string); t {
	case "object":
		out.Type = genai.TypeObject
	case "array":
		out.Type = genai.TypeArray
	case "string":
		out.Type = genai.TypeString
	case "integer":
		out.Type = genai.TypeInteger
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	default:
		return nil, fmt.Errorf("unsupported schema type %q", t)
	}

	if d, ok := in["description"].(string); ok {
		out.Description = d
	}

	if props, ok := in["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %s: expected object", name)
			}
			s, err := ToSchema(child)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", name, err)
			}
			out.Properties[name] = s
		}
	}

	switch req := in["required"].(type) {
	case []string:
		out.Required = append(out.Required, req...)
	case []any:
		for _, r := range req {
			if s, ok := r.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}

	if items, ok := in["items"].(map[string]any); ok {
		s, err := ToSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		out.Items = s
	}
	return out, nil
}
