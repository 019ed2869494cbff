package jsoncodec

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// FromJSONString parses JSON text into a value tree: objects become
// map[string]any, arrays []any, integral numbers int64 and other numbers
// float64. With AllowEmpty (the default) blank input yields nil.
func FromJSONString(s string, opts ...Option) (any, error) {
	return FromJSONBytes([]byte(s), opts...)
}

// FromJSONBytes is FromJSONString over bytes.
func FromJSONBytes(b []byte, opts ...Option) (any, error) {
	o := build(opts)
	if len(bytes.TrimSpace(b)) == 0 {
		if o.AllowEmpty {
			return nil, nil
		}
		return nil, newDecodeError("Expecting value", b, len(b), nil)
	}
	if !json.Valid(b) {
		return nil, syntaxError(b)
	}
	if o.RejectDuplicateKeys {
		if err := checkDuplicateKeys(b); err != nil {
			return nil, err
		}
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, newDecodeError(err.Error(), b, 0, err)
	}
	return fromNumbers(v), nil
}

// syntaxError locates the first syntax error of b.
func syntaxError(b []byte) error {
	var v any
	err := json.Unmarshal(b, &v)
	if err == nil {
		return newDecodeError("Invalid JSON", b, len(b), nil)
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return newDecodeError(se.Error(), b, int(se.Offset), err)
	}
	return newDecodeError(err.Error(), b, len(b), err)
}

func fromNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		return number(t)
	case []any:
		for i, e := range t {
			t[i] = fromNumbers(e)
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = fromNumbers(e)
		}
		return t
	}
	return v
}

func number(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	}
	// out-of-range literals saturate to ±Inf
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
