package dsl

import (
	"context"
	"fmt"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/i18n"
	js "github.com/reoring/goclean/jsonschema"
)

// TypeField accepts values whose kind is one of the given kinds.
type TypeField struct {
	base[*TypeField]
	kinds kindSet
}

// Type returns a field checking the value kind against one kind or an
// alternation of kinds. It panics when no kind is given.
func Type(kinds ...goclean.Kind) *TypeField {
	f := &TypeField{kinds: mustKinds(kinds)}
	f.self = f
	return f
}

// Bool returns a field accepting booleans.
func Bool() *TypeField { return Type(goclean.KindBool) }

// Kinds returns a copy of the accepted kinds.
func (f *TypeField) Kinds() []goclean.Kind { return append([]goclean.Kind(nil), f.kinds...) }

func (f *TypeField) Clean(ctx context.Context, v any) (any, error) { return f.kinds.check(v) }

func (f *TypeField) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: f.kinds.jsonType(), Default: f.policy.Default}, nil
}

// ScalarField is a TypeField over numbers with optional inclusive bounds.
type ScalarField struct {
	base[*ScalarField]
	kinds    kindSet
	min, max any
}

// Scalar returns a numeric field for the given kinds. Bounds are set with
// Min and Max.
func Scalar(kinds ...goclean.Kind) *ScalarField {
	f := &ScalarField{kinds: mustKinds(kinds)}
	f.self = f
	return f
}

// Int returns a field accepting integers.
func Int() *ScalarField { return Scalar(goclean.KindInt) }

// Float returns a field accepting integers or floats.
func Float() *ScalarField { return Scalar(goclean.KindInt, goclean.KindFloat) }

// Min sets the inclusive lower bound. It panics when n is not a number.
func (f *ScalarField) Min(n any) *ScalarField { f.min = mustNumber(n); return f }

// Max sets the inclusive upper bound. It panics when n is not a number.
func (f *ScalarField) Max(n any) *ScalarField { f.max = mustNumber(n); return f }

// Bounds returns the configured bounds (nil when unset).
func (f *ScalarField) Bounds() (min, max any) { return f.min, f.max }

func (f *ScalarField) Clean(ctx context.Context, v any) (any, error) {
	v, err := f.kinds.check(v)
	if err != nil {
		return nil, err
	}
	if f.min != nil {
		if c, ok := goclean.CompareNumbers(v, f.min); !ok || c < 0 {
			return nil, goclean.NewFieldError(goclean.CodeTooSmall,
				i18n.T(i18n.MsgTooSmall, map[string]string{"min": fmt.Sprint(f.min)}))
		}
	}
	if f.max != nil {
		if c, ok := goclean.CompareNumbers(v, f.max); !ok || c > 0 {
			return nil, goclean.NewFieldError(goclean.CodeTooBig,
				i18n.T(i18n.MsgTooBig, map[string]string{"max": fmt.Sprint(f.max)}))
		}
	}
	return v, nil
}

func (f *ScalarField) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: f.kinds.jsonType(), Minimum: f.min, Maximum: f.max, Default: f.policy.Default}, nil
}

func mustNumber(n any) any {
	switch k := goclean.KindOf(n); k {
	case goclean.KindInt, goclean.KindFloat:
		return goclean.Normalize(n)
	default:
		panic(fmt.Sprintf("dsl: bound must be a number, got %T", n))
	}
}
