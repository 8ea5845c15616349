package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateJSONAgainstSchema checks a candidate statement document against the
// map form of a JSON Schema, typically the one from BuildStatementJSONSchema.
// It is strict: run NormalizeStatementJSON first, since raw model output with
// non-canonical year labels or out-of-range confidence will fail here.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal statement schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("statement.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add statement schema: %w", err)
	}
	schema, err := compiler.Compile("statement.schema.json")
	if err != nil {
		return fmt.Errorf("compile statement schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("document does not match statement schema: %w", err)
	}
	return nil
}
