package llm

// BuildReceiptJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map for the categorized-receipt object the model is asked to
// produce. Only the item name is required; missing optionals must propagate
// to the caller as absent, so they are not constrained to be present.
func BuildReceiptJSONSchema() map[string]any {
	// additionalProperties stays open: unknown keys from the model are
	// ignored at mapping time, not treated as parse failures.
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"храни":     itemArrayProp(),
			"напитки":   itemArrayProp(),
			"обща_сума": map[string]any{"type": "number"},
		},
		"required": []string{"храни", "напитки", "обща_сума"},
	}
}

func itemArrayProp() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"име":           map[string]any{"type": "string", "minLength": 1},
				"количество":    map[string]any{"type": "number"},
				"цена":          map[string]any{"type": "number"},
				"мерна_единица": map[string]any{"type": "string"},
			},
			"required": []string{"име"},
		},
	}
}
