package explain

import "github.com/abhisek/quizdeck/internal/llm"

// Schema constrains the provider to a single explanation string.
var Schema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "Why the correct option answers a React quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "2-4 sentences explaining why the correct option is right",
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}
