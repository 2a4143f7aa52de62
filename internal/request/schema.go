package request

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
}

// Schema returns the JSON Schema of a request.
func Schema() *jsonschema.Schema {
	s := reflector().Reflect(&Request{})
	s.Title = "clanker-input request"
	s.Description = "Ask the user one question (prompt) or several in order (questions)."
	return s
}

// QuestionSchema returns the JSON Schema of one entry of questions, as a
// plain map for embedding in other schemas.
func QuestionSchema() map[string]any {
	b, err := json.Marshal(reflector().Reflect(&Question{}))
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{"type": "object"}
	}
	delete(m, "$schema")
	delete(m, "$id")
	return m
}
