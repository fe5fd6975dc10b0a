package drafts

import (
	"encoding/json"
	"fmt"

	"promptvault/pkg/formatting"
)

// attributeFields are the required string fields of every draft result,
// in schema order.
var attributeFields = []string{
	"core_theme", "hair", "pose", "outfit", "atmosphere",
	"gaze", "makeup", "background", "aspect_ratio", "details",
}

// resultSchema builds the JSON schema providers are constrained to.
// includeAnswer adds the feedback answer field.
func resultSchema(includeAnswer bool) map[string]any {
	properties := make(map[string]any, len(attributeFields)+2)
	required := make([]string, 0, len(attributeFields)+2)

	for _, field := range attributeFields {
		properties[field] = map[string]any{"type": "string"}
		required = append(required, field)
	}

	properties["finalPrompt"] = map[string]any{"type": "string"}
	required = append(required, "finalPrompt")

	if includeAnswer {
		properties["answer"] = map[string]any{"type": "string"}
		required = append(required, "answer")
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// parseResult validates raw model output against the draft schema:
// parseable JSON, every required field present and a string. Any
// violation maps to ErrGenerationFailed.
func parseResult(raw string, requireAnswer bool) (*DraftResult, error) {
	fields, err := formatting.Parse[map[string]json.RawMessage](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	required := append([]string{"finalPrompt"}, attributeFields...)
	if requireAnswer {
		required = append(required, "answer")
	}

	for _, field := range required {
		value, ok := fields[field]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrGenerationFailed, field)
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: field %q is not a string", ErrGenerationFailed, field)
		}
	}

	result, err := formatting.Parse[DraftResult](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return &result, nil
}
