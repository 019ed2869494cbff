package jsoncodec

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	goclean "github.com/reoring/goclean"
)

// dupFrame tracks one open container while scanning tokens.
type dupFrame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string // last key read (objects)
	index        int    // next element index (arrays)
	ref          goclean.PathRef
}

// checkDuplicateKeys scans b, which must be valid JSON, and reports the
// first object holding the same key twice.
func checkDuplicateKeys(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	var stack []dupFrame
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// syntax errors are reported by the decoder proper
			return nil
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{object: true, keys: map[string]struct{}{}, expectingKey: true, ref: childRef(stack)})
			case '[':
				stack = append(stack, dupFrame{ref: childRef(stack)})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone(stack)
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := &stack[n-1]
				if _, dup := top.keys[v]; dup {
					return &DecodeError{Msg: fmt.Sprintf("Duplicate key %q in object at %s", v, top.ref.Pointer())}
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valueDone(stack)
		default:
			valueDone(stack)
		}
	}
}

func childRef(stack []dupFrame) goclean.PathRef {
	n := len(stack)
	if n == 0 {
		return goclean.Root()
	}
	top := &stack[n-1]
	if top.object {
		return top.ref.Field(top.key)
	}
	return top.ref.Index(top.index)
}

// valueDone records that the current slot of the innermost container holds
// a complete value.
func valueDone(stack []dupFrame) {
	n := len(stack)
	if n == 0 {
		return
	}
	top := &stack[n-1]
	if top.object {
		top.expectingKey = true
		return
	}
	top.index++
}
