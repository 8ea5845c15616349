package llm

// BuildStatementJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the backend as a structured output constraint
// and also use it locally to validate the response.
func BuildStatementJSONSchema() map[string]any {
	lineItem := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"particulars": map[string]any{"type": "string", "minLength": 1},
			"values": map[string]any{
				"type":          "object",
				"propertyNames": map[string]any{"pattern": yearLabelPattern},
				// null means the figure is absent for that period; the backend
				// must never substitute zero.
				"additionalProperties": map[string]any{"type": []string{"number", "null"}},
			},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"notes":      map[string]any{"type": "string"},
		},
		"required": []string{"particulars", "values", "confidence"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"items":    map[string]any{"type": "array", "items": lineItem},
			"currency": map[string]any{"type": "string", "minLength": 1},
			"units":    map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"items", "currency", "units"},
	}
}

// yearLabelPattern is the normalized reporting-period form, e.g. "FY 24".
const yearLabelPattern = `^FY \d{2}$`
