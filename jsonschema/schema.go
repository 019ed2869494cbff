package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Type    any    `json:"type,omitempty"` // string, or []string for alternations
	Format  string `json:"format,omitempty"`
	Default any    `json:"default,omitempty"`
	Enum    []any  `json:"enum,omitempty"`

	// Number
	Minimum any `json:"minimum,omitempty"`
	Maximum any `json:"maximum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`
}

// TypeNames maps value-tree kind names to JSON Schema type names.
func TypeNames(kinds ...string) any {
	out := make([]string, 0, len(kinds))
	seen := map[string]bool{}
	for _, k := range kinds {
		t := k
		switch k {
		case "int":
			t = "integer"
		case "float":
			t = "number"
		case "bool":
			t = "boolean"
		case "list":
			t = "array"
		case "dict":
			t = "object"
		case "time":
			t = "string"
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
