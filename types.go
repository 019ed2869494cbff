package goclean

import (
	"math"
	"reflect"
	"strings"
	"time"
)

// Kind classifies values of the language-neutral value tree.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindDict
	KindTime
)

var kindNames = [...]string{"invalid", "null", "bool", "int", "float", "string", "list", "dict", "time"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// ParseKind maps a kind name back to its Kind. Unknown names yield KindInvalid.
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == s {
			return Kind(i)
		}
	}
	return KindInvalid
}

// KindOf classifies v. Typed slices and string-keyed maps count as lists and
// dicts; values outside the tree report KindInvalid.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case []any:
		return KindList
	case map[string]any:
		return KindDict
	case Timestamp, time.Time:
		return KindTime
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return KindInvalid
		}
		return KindList
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindDict
		}
	}
	return KindInvalid
}

// Normalize converts scalar Go values to their canonical tree representation:
// integers become int64, float32 becomes float64 and time.Time becomes an
// aware Timestamp. Other values are returned unchanged.
func Normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return uintToTree(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return uintToTree(t)
	case float32:
		return float64(t)
	case time.Time:
		return Aware(t)
	}
	return v
}

func uintToTree(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

// AsList returns v as []any, converting typed slices element by element.
func AsList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	if KindOf(v) != KindList {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsDict returns v as map[string]any, converting typed string-keyed maps.
func AsDict(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if KindOf(v) != KindDict {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// CompareNumbers compares two numeric values of any integer or float type.
// ok is false when either operand is not a number or is NaN.
func CompareNumbers(a, b any) (cmp int, ok bool) {
	a, b = Normalize(a), Normalize(b)
	ai, aInt := a.(int64)
	bi, bInt := b.(int64)
	if aInt && bInt {
		switch {
		case ai < bi:
			return -1, true
		case ai > bi:
			return 1, true
		}
		return 0, true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok || math.IsNaN(af) || math.IsNaN(bf) {
		return 0, false
	}
	switch {
	case af < bf:
		return -1, true
	case af > bf:
		return 1, true
	}
	return 0, true
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// Equal compares two tree values. Numbers compare by value across integer
// and float kinds (1 == 1.0); timestamps compare by instant and awareness;
// lists and dicts compare element-wise.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if isNumeric(ka) && isNumeric(kb) {
		c, ok := CompareNumbers(a, b)
		return ok && c == 0
	}
	if ka != kb {
		return false
	}
	switch ka {
	case KindTime:
		ta, _ := TimestampOf(a)
		tb, _ := TimestampOf(b)
		return ta.Aware == tb.Aware && ta.Time.Equal(tb.Time)
	case KindList:
		la, _ := AsList(a)
		lb, _ := AsList(b)
		if len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !Equal(la[i], lb[i]) {
				return false
			}
		}
		return true
	case KindDict:
		ma, _ := AsDict(a)
		mb, _ := AsDict(b)
		if len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	case KindInvalid:
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindFloat }
