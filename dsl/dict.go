package dsl

import (
	"context"
	"sort"
	"strconv"
	"strings"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/i18n"
	js "github.com/reoring/goclean/jsonschema"
)

// DictField accepts string-keyed mappings, validating either every value with
// one field or a fixed set of keys with their own fields.
type DictField struct {
	base[*DictField]
	mode   fieldsMode
	each   goclean.Field
	keys   []string
	fields map[string]goclean.Field
}

// Dict returns a dict field without constraints.
func Dict() *DictField {
	f := &DictField{}
	f.self = f
	return f
}

// Each validates the value under every key with field, preserving keys.
// It panics on a nil field.
func (f *DictField) Each(field goclean.Field) *DictField {
	if field == nil {
		panic("dsl: Dict().Each requires a non-nil Field")
	}
	f.mode, f.each, f.keys, f.fields = fieldsEach, field, nil, nil
	return f
}

// Key declares an expected key. Keys are processed in declaration order and
// input keys that were never declared are rejected. It panics on a nil field
// or a repeated key.
func (f *DictField) Key(name string, field goclean.Field) *DictField {
	if field == nil {
		panic("dsl: Dict().Key requires a non-nil Field for " + strconv.Quote(name))
	}
	if f.mode != fieldsItems {
		f.mode, f.each, f.fields = fieldsItems, nil, map[string]goclean.Field{}
	}
	if _, dup := f.fields[name]; dup {
		panic("dsl: duplicate key " + strconv.Quote(name))
	}
	f.keys = append(f.keys, name)
	f.fields[name] = field
	return f
}

// Keys declares expected keys from a map, in sorted key order.
func (f *DictField) Keys(fields map[string]goclean.Field) *DictField {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		f.Key(k, fields[k])
	}
	return f
}

// KeyNames returns the declared keys in processing order.
func (f *DictField) KeyNames() []string { return append([]string(nil), f.keys...) }

func (f *DictField) Clean(ctx context.Context, v any) (any, error) {
	m, ok := goclean.AsDict(v)
	if !ok {
		return kindSet{goclean.KindDict}.check(v)
	}
	switch f.mode {
	case fieldsEach:
		out := make(map[string]any, len(m))
		for _, k := range sortedKeys(m) {
			add := func(x any) { out[k] = x }
			if err := goclean.CleanAndAdd(ctx, f.each, true, m[k], add); err != nil {
				return nil, goclean.WrapItem(k, err)
			}
		}
		return out, nil
	case fieldsItems:
		out := make(map[string]any, len(f.keys))
		for _, k := range f.keys {
			add := func(x any) { out[k] = x }
			val, present := m[k]
			if err := goclean.CleanAndAdd(ctx, f.fields[k], present, val, add); err != nil {
				return nil, goclean.WrapItem(k, err)
			}
		}
		var unexpected []string
		for _, k := range sortedKeys(m) {
			if _, ok := f.fields[k]; !ok {
				unexpected = append(unexpected, strconv.Quote(k))
			}
		}
		if len(unexpected) > 0 {
			return nil, goclean.NewFieldError(goclean.CodeUnknownKey,
				i18n.T(i18n.MsgUnknownKeys, map[string]string{"keys": strings.Join(unexpected, ", ")}))
		}
		return out, nil
	}
	return m, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *DictField) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "object", Default: f.policy.Default}
	switch f.mode {
	case fieldsEach:
		v, err := Export(f.each)
		if err != nil {
			return nil, err
		}
		s.AdditionalProperties = v
	case fieldsItems:
		s.Properties = make(map[string]*js.Schema, len(f.keys))
		for _, k := range f.keys {
			p, err := Export(f.fields[k])
			if err != nil {
				return nil, err
			}
			s.Properties[k] = p
			if f.fields[k].Policy().OnMissing == goclean.Raise {
				s.Required = append(s.Required, k)
			}
		}
		s.AdditionalProperties = false
	}
	return s, nil
}
