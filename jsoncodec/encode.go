package jsoncodec

import (
	"bytes"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	goclean "github.com/reoring/goclean"
)

// Serializable is implemented by values that provide their own JSON form.
// Serialize returns a value tree that is encoded in place of the receiver.
type Serializable interface {
	Serialize() any
}

const maxDepth = 1000

var errTooDeep = errors.New("maximum nesting depth exceeded")

// ToJSONString serializes v as JSON text.
func ToJSONString(v any, opts ...Option) (string, error) {
	b, err := ToJSONBytes(v, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToJSONBytes is ToJSONString returning bytes.
func ToJSONBytes(v any, opts ...Option) ([]byte, error) {
	o := build(opts)
	prepared, err := prepare(v, 0)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if o.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", o.Indent))
	}
	if err := enc.Encode(prepared); err != nil {
		return nil, &EncodeError{Cause: err}
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if o.EnsureASCII {
		out = escapeNonASCII(out)
	}
	return out, nil
}

// prepare rewrites v into a tree the JSON encoder understands: timestamps
// become ISO-8601 strings and Serializable values are replaced by their hook
// result.
func prepare(v any, depth int) (any, error) {
	if depth > maxDepth {
		return nil, &EncodeError{Cause: errTooDeep}
	}
	switch t := v.(type) {
	case nil, bool, string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case goclean.Timestamp:
		return t.ISO(), nil
	case time.Time:
		return goclean.Aware(t).ISO(), nil
	case Serializable:
		return prepare(t.Serialize(), depth+1)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			p, err := prepare(e, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			p, err := prepare(e, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = p
		}
		return out, nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, &EncodeObjectError{Object: v}
	}
	if l, ok := goclean.AsList(v); ok {
		return prepare(l, depth)
	}
	if m, ok := goclean.AsDict(v); ok {
		return prepare(m, depth)
	}
	return v, nil
}

// escapeNonASCII rewrites every non-ASCII rune as a \uXXXX escape, using
// surrogate pairs above the basic multilingual plane. Non-ASCII bytes only
// occur inside string literals in encoder output.
func escapeNonASCII(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] < utf8.RuneSelf {
		i++
	}
	if i == len(b) {
		return b
	}
	out := make([]byte, 0, len(b)+16)
	out = append(out, b[:i]...)
	for i < len(b) {
		c := b[i]
		if c < utf8.RuneSelf {
			out = append(out, c)
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		i += size
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			out = appendEscape(out, r1)
			out = appendEscape(out, r2)
			continue
		}
		out = appendEscape(out, r)
	}
	return out
}

func appendEscape(out []byte, r rune) []byte {
	h := strconv.FormatInt(int64(r), 16)
	out = append(out, '\\', 'u')
	for n := len(h); n < 4; n++ {
		out = append(out, '0')
	}
	return append(out, h...)
}
