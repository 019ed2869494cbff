package dsl

import (
	"fmt"

	goclean "github.com/reoring/goclean"
	js "github.com/reoring/goclean/jsonschema"
)

// Exporter is implemented by fields that can describe themselves as JSON Schema.
type Exporter interface {
	JSONSchema() (*js.Schema, error)
}

// Export projects a field tree into a JSON Schema document.
func Export(f goclean.Field) (*js.Schema, error) {
	if ex, ok := f.(Exporter); ok {
		return ex.JSONSchema()
	}
	return nil, fmt.Errorf("dsl: %T does not support JSON Schema export", f)
}
