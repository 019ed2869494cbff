package dsl

import (
	"strings"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/i18n"
	js "github.com/reoring/goclean/jsonschema"
)

// base carries the presence/error policy shared by every builder. B is the
// concrete builder type so that chained calls keep their static type.
type base[B any] struct {
	self   B
	policy goclean.Policy
}

// OnMissing sets the action taken when the slot is absent from the input.
func (b *base[B]) OnMissing(a goclean.Action) B { b.policy.OnMissing = a; return b.self }

// OnError sets the action taken when the value fails to clean.
func (b *base[B]) OnError(a goclean.Action) B { b.policy.OnError = a; return b.self }

// Default sets the value used by the UseDefault action.
func (b *base[B]) Default(v any) B { b.policy.Default = v; return b.self }

// Optional is shorthand for OnMissing(goclean.Skip).
func (b *base[B]) Optional() B { b.policy.OnMissing = goclean.Skip; return b.self }

// Policy implements goclean.Field.
func (b *base[B]) Policy() goclean.Policy { return b.policy }

func (b *base[B]) setPolicy(p goclean.Policy) { b.policy = p }

// SetPolicy replaces the policy of a field built by this package. It
// returns false for fields implemented elsewhere.
func SetPolicy(f goclean.Field, p goclean.Policy) bool {
	s, ok := f.(interface{ setPolicy(goclean.Policy) })
	if ok {
		s.setPolicy(p)
	}
	return ok
}

// kindSet is a type constraint: one kind or an alternation of kinds.
type kindSet []goclean.Kind

func (ks kindSet) check(v any) (any, error) {
	k := goclean.KindOf(v)
	for _, want := range ks {
		if k == want {
			return goclean.Normalize(v), nil
		}
	}
	return nil, goclean.NewFieldError(goclean.CodeInvalidType,
		i18n.T(i18n.MsgInvalidType, map[string]string{"expected": ks.String()}))
}

func (ks kindSet) String() string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}

func (ks kindSet) jsonType() any {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.String()
	}
	return js.TypeNames(names...)
}

func mustKinds(kinds []goclean.Kind) kindSet {
	if len(kinds) == 0 {
		panic("dsl: at least one kind is required")
	}
	for _, k := range kinds {
		if k == goclean.KindInvalid {
			panic("dsl: invalid kind in type constraint")
		}
	}
	return append(kindSet(nil), kinds...)
}

func intPtr(n int) *int { return &n }
