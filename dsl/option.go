package dsl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/i18n"
	js "github.com/reoring/goclean/jsonschema"
)

// OptionField cleans with an inner field, then requires the result to be one
// of a fixed list of options.
type OptionField struct {
	base[*OptionField]
	field   goclean.Field
	options []any
}

// Option returns a field restricting field's output to options. It panics on
// a nil field.
func Option(field goclean.Field, options ...any) *OptionField {
	if field == nil {
		panic("dsl: Option requires a non-nil Field")
	}
	f := &OptionField{field: field, options: append([]any(nil), options...)}
	f.self = f
	return f
}

// Options returns a copy of the allowed values.
func (f *OptionField) Options() []any { return append([]any(nil), f.options...) }

func (f *OptionField) Clean(ctx context.Context, v any) (any, error) {
	v, err := f.field.Clean(ctx, v)
	if err != nil {
		return nil, err
	}
	for _, o := range f.options {
		if goclean.Equal(v, o) {
			return v, nil
		}
	}
	labels := make([]string, len(f.options))
	for i, o := range f.options {
		if s, ok := o.(string); ok {
			labels[i] = strconv.Quote(s)
		} else {
			labels[i] = fmt.Sprint(o)
		}
	}
	return nil, goclean.NewFieldError(goclean.CodeInvalidEnum,
		i18n.T(i18n.MsgInvalidEnum, map[string]string{"options": strings.Join(labels, " or ")}))
}

func (f *OptionField) JSONSchema() (*js.Schema, error) {
	s, err := Export(f.field)
	if err != nil {
		return nil, err
	}
	s.Enum = f.Options()
	s.Default = f.policy.Default
	return s, nil
}
