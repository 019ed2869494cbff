package dsl

import (
	"context"
	"strconv"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/i18n"
	js "github.com/reoring/goclean/jsonschema"
)

// fieldsMode tags which variant of element/value fields a container holds.
type fieldsMode int

const (
	fieldsNone fieldsMode = iota
	fieldsEach            // one field applied to every element
	fieldsItems           // positional (lists) or keyed (dicts) fields
)

// ListField accepts lists with optional length bounds and element fields.
type ListField struct {
	base[*ListField]
	minLen int
	maxLen int
	mode   fieldsMode
	each   goclean.Field
	items  []goclean.Field
}

// List returns a list field without constraints.
func List() *ListField {
	f := &ListField{minLen: -1, maxLen: -1}
	f.self = f
	return f
}

// ListByLength returns a list field whose length must equal n.
func ListByLength(n int) *ListField { return List().MinLength(n).MaxLength(n) }

// ListByFields returns a positional list field whose length must equal
// len(fields).
func ListByFields(fields ...goclean.Field) *ListField {
	return ListByLength(len(fields)).Items(fields...)
}

// MinLength sets the minimum number of elements (inclusive).
func (f *ListField) MinLength(n int) *ListField { f.minLen = n; return f }

// MaxLength sets the maximum number of elements (inclusive).
func (f *ListField) MaxLength(n int) *ListField { f.maxLen = n; return f }

// Each validates every element with field. It panics on a nil field.
func (f *ListField) Each(field goclean.Field) *ListField {
	if field == nil {
		panic("dsl: List().Each requires a non-nil Field")
	}
	f.mode, f.each, f.items = fieldsEach, field, nil
	return f
}

// Items validates element i with fields[i]. A nil entry passes its element
// through unvalidated. Elements beyond len(fields) are rejected.
func (f *ListField) Items(fields ...goclean.Field) *ListField {
	f.mode, f.each, f.items = fieldsItems, nil, append([]goclean.Field(nil), fields...)
	return f
}

func (f *ListField) Clean(ctx context.Context, v any) (any, error) {
	list, ok := goclean.AsList(v)
	if !ok {
		return kindSet{goclean.KindList}.check(v)
	}
	if f.minLen >= 0 && len(list) < f.minLen {
		return nil, listLengthError(goclean.CodeTooShort, i18n.MsgListTooShort, "min", f.minLen)
	}
	if f.maxLen >= 0 && len(list) > f.maxLen {
		return nil, listLengthError(goclean.CodeTooLong, i18n.MsgListTooLong, "max", f.maxLen)
	}
	switch f.mode {
	case fieldsEach:
		out := make([]any, 0, len(list))
		add := func(x any) { out = append(out, x) }
		for i, item := range list {
			if err := goclean.CleanAndAdd(ctx, f.each, true, item, add); err != nil {
				return nil, goclean.WrapItem(i, err)
			}
		}
		return out, nil
	case fieldsItems:
		if len(list) > len(f.items) {
			return nil, listLengthError(goclean.CodeTooLong, i18n.MsgListTooLong, "max", len(f.items))
		}
		out := make([]any, 0, len(list))
		add := func(x any) { out = append(out, x) }
		for i, item := range list {
			if f.items[i] == nil {
				out = append(out, item)
				continue
			}
			if err := goclean.CleanAndAdd(ctx, f.items[i], true, item, add); err != nil {
				return nil, goclean.WrapItem(i, err)
			}
		}
		return out, nil
	}
	return list, nil
}

func listLengthError(code, msg, key string, n int) error {
	return goclean.NewFieldError(code, i18n.T(msg, map[string]string{key: strconv.Itoa(n)}))
}

func (f *ListField) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "array", Default: f.policy.Default}
	if f.minLen >= 0 {
		s.MinItems = intPtr(f.minLen)
	}
	if f.maxLen >= 0 {
		s.MaxItems = intPtr(f.maxLen)
	}
	switch f.mode {
	case fieldsEach:
		item, err := Export(f.each)
		if err != nil {
			return nil, err
		}
		s.Items = item
	case fieldsItems:
		for _, it := range f.items {
			if it == nil {
				s.PrefixItems = append(s.PrefixItems, &js.Schema{})
				continue
			}
			p, err := Export(it)
			if err != nil {
				return nil, err
			}
			s.PrefixItems = append(s.PrefixItems, p)
		}
	}
	return s, nil
}
