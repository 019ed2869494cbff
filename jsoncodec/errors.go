package jsoncodec

import (
	"errors"
	"fmt"
)

// ErrJSON is matched by every error of this package via errors.Is.
var ErrJSON = errors.New("jsoncodec: json error")

// ErrEncode is matched by *EncodeError and *EncodeObjectError.
var ErrEncode = fmt.Errorf("%w: encode", ErrJSON)

// ErrDecode is matched by *DecodeError.
var ErrDecode = fmt.Errorf("%w: decode", ErrJSON)

// EncodeError reports a value that could not be serialized.
type EncodeError struct {
	Cause error
}

func (e *EncodeError) Error() string {
	if e.Cause == nil {
		return "JSON encode error"
	}
	return "JSON encode error: " + e.Cause.Error()
}

func (e *EncodeError) Unwrap() error { return e.Cause }

func (e *EncodeError) Is(target error) bool { return target == ErrEncode || target == ErrJSON }

// EncodeObjectError reports a value kind with no JSON representation.
type EncodeObjectError struct {
	Object any
}

func (e *EncodeObjectError) Error() string {
	return fmt.Sprintf("Object of type %T is not JSON serializable", e.Object)
}

func (e *EncodeObjectError) Is(target error) bool { return target == ErrEncode || target == ErrJSON }

// DecodeError reports malformed input. Line and Column are 1-based and zero
// when the failure has no single position.
type DecodeError struct {
	Msg    string
	Line   int
	Column int
	Offset int
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s (line %d, column %d)", e.Msg, e.Line, e.Column)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode || target == ErrJSON }

// newDecodeError positions msg at byte offset pos of doc.
func newDecodeError(msg string, doc []byte, pos int, cause error) *DecodeError {
	if pos < 0 {
		pos = 0
	}
	if pos > len(doc) {
		pos = len(doc)
	}
	line, lastNL := 1, -1
	for i := 0; i < pos; i++ {
		if doc[i] == '\n' {
			line++
			lastNL = i
		}
	}
	return &DecodeError{Msg: msg, Line: line, Column: pos - lastNL, Offset: pos, Cause: cause}
}
