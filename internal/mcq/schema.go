package mcq

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/edubot/edubot/internal/locale"
)

// RecordSchema is the JSON Schema every Record must satisfy once encoded.
var RecordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":     "array",
			"minItems": 4,
			"maxItems": 4,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
		"answer":      map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
		"explanation": map[string]any{"type": "string", "minLength": 1},
	},
	"required":             []any{"question", "options", "answer", "explanation"},
	"additionalProperties": false,
}

const recordSchemaURL = "schema://mcq-record.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// SchemaValidator checks a record against RecordSchema.
type SchemaValidator struct{}

func (v *SchemaValidator) Name() string { return "schema" }

func (v *SchemaValidator) Validate(r *Record, _ locale.Language) *ValidationError {
	schema, err := recordSchema()
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}

	// The validator expects a decoded JSON value, not a Go struct.
	raw, err := json.Marshal(r)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("encode record: %v", err)}
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("decode record: %v", err)}
	}

	if err := schema.Validate(doc); err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("schema validation failed: %v", err),
			Retryable: true,
		}
	}
	return nil
}

func recordSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(RecordSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(recordSchemaURL)
	})
	return compiledSchema, compileErr
}
