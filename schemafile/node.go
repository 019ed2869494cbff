package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is one field declaration of a schema document.
type Node struct {
	Type          string   `yaml:"type"`
	Kinds         []string `yaml:"kinds,omitempty"`
	Min           any      `yaml:"min,omitempty"`
	Max           any      `yaml:"max,omitempty"`
	MinLength     *int     `yaml:"min_length,omitempty"`
	MaxLength     *int     `yaml:"max_length,omitempty"`
	Length        *int     `yaml:"length,omitempty"`
	Regex         string   `yaml:"regex,omitempty"`
	TimezoneAware *bool    `yaml:"timezone_aware,omitempty"`
	Each          *Node    `yaml:"each,omitempty"`
	Items         []*Node  `yaml:"items,omitempty"`
	Fields        Fields   `yaml:"fields,omitempty"`
	Field         *Node    `yaml:"field,omitempty"`
	Options       []any    `yaml:"options,omitempty"`
	Missing       string   `yaml:"missing,omitempty"`
	Error         string   `yaml:"error,omitempty"`
	Optional      bool     `yaml:"optional,omitempty"`
	Default       any      `yaml:"default,omitempty"`

	// Line is the source line of the declaration (0 when built in code).
	Line int `yaml:"-"`
}

// NamedNode is one entry of a dict declaration.
type NamedNode struct {
	Name string
	Node *Node
}

// Fields keeps dict keys in document order.
type Fields []NamedNode

var knownKeys = map[string]bool{
	"type": true, "kinds": true, "min": true, "max": true,
	"min_length": true, "max_length": true, "length": true, "regex": true,
	"timezone_aware": true, "each": true, "items": true, "fields": true,
	"field": true, "options": true, "missing": true, "error": true,
	"optional": true, "default": true,
}

// DuplicateKeyError reports a key declared twice in one mapping.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	Line      int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q at line %d (first at line %d)", e.Key, e.Line, e.FirstLine)
}

// UnmarshalYAML rejects unknown and repeated keys at every nesting level.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: field declaration must be a mapping", value.Line)
	}
	if err := checkKeys(value, knownKeys); err != nil {
		return err
	}
	type plain Node
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	n.Line = value.Line
	return nil
}

// UnmarshalYAML reads a mapping of key name to declaration, in order.
func (f *Fields) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", value.Line)
	}
	if err := checkKeys(value, nil); err != nil {
		return err
	}
	out := make(Fields, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		var child Node
		if err := v.Decode(&child); err != nil {
			return err
		}
		out = append(out, NamedNode{Name: k.Value, Node: &child})
	}
	*f = out
	return nil
}

func checkKeys(value *yaml.Node, allowed map[string]bool) error {
	first := make(map[string]int, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i]
		if line, dup := first[k.Value]; dup {
			return &DuplicateKeyError{Key: k.Value, FirstLine: line, Line: k.Line}
		}
		first[k.Value] = k.Line
		if allowed != nil && !allowed[k.Value] {
			return fmt.Errorf("line %d: unknown key %q (allowed: %s)", k.Line, k.Value, allowedList(allowed))
		}
	}
	return nil
}

func allowedList(allowed map[string]bool) string {
	keys := make([]string, 0, len(allowed))
	for k := range allowed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// ErrEmptyDocument is returned when the input holds no declaration.
var ErrEmptyDocument = errors.New("schemafile: empty document")

// Parse reads a YAML or JSON schema document. Only the first document of a
// multi-document stream is used.
func Parse(data []byte) (*Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var n *Node
	if err := dec.Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	if n == nil {
		return nil, ErrEmptyDocument
	}
	return n, nil
}
