package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Error families. Every error returned by this package matches ErrEncoding
// and exactly one of ErrStringEncoding or ErrDataEncoding via errors.Is.
var (
	ErrEncoding       = errors.New("codec: encoding error")
	ErrStringEncoding = fmt.Errorf("%w: string", ErrEncoding)
	ErrDataEncoding   = fmt.Errorf("%w: data", ErrEncoding)
)

func isStringFamily(target error) bool {
	return target == ErrStringEncoding || target == ErrEncoding
}

func isDataFamily(target error) bool {
	return target == ErrDataEncoding || target == ErrEncoding
}

// Op names the direction of a failed conversion.
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// StringEncodingError reports text that the charset cannot represent, or
// bytes that are not valid in it.
type StringEncodingError struct {
	Charset string
	Op      Op
	Cause   error
}

func (e *StringEncodingError) Error() string {
	msg := fmt.Sprintf("Cannot %s string with charset '%s'", e.Op, e.Charset)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StringEncodingError) Unwrap() error        { return e.Cause }
func (e *StringEncodingError) Is(target error) bool { return isStringFamily(target) }

// UnknownCharsetError reports a charset name no registry knows.
type UnknownCharsetError struct {
	Charset string
}

func (e *UnknownCharsetError) Error() string        { return fmt.Sprintf("Unknown charset '%s'", e.Charset) }
func (e *UnknownCharsetError) Is(target error) bool { return isStringFamily(target) }

// NoCharsetSupportedError reports that negotiation found no usable charset.
type NoCharsetSupportedError struct {
	Tried []string
}

func (e *NoCharsetSupportedError) Error() string {
	return "No supported charset" + tried(e.Tried)
}

func (e *NoCharsetSupportedError) Is(target error) bool { return isStringFamily(target) }

// DataEncodingError reports a content codec failure such as corrupt
// compressed input.
type DataEncodingError struct {
	Encoding string
	Op       Op
	Cause    error
}

func (e *DataEncodingError) Error() string {
	msg := fmt.Sprintf("Cannot %s data with encoding '%s'", e.Op, e.Encoding)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DataEncodingError) Unwrap() error        { return e.Cause }
func (e *DataEncodingError) Is(target error) bool { return isDataFamily(target) }

// UnknownEncodingTypeError reports a content coding no registry knows.
type UnknownEncodingTypeError struct {
	Encoding string
}

func (e *UnknownEncodingTypeError) Error() string {
	return fmt.Sprintf("Unknown encoding type '%s'", e.Encoding)
}

func (e *UnknownEncodingTypeError) Is(target error) bool { return isDataFamily(target) }

// NoEncodingSupportedError reports that negotiation found no usable content
// coding.
type NoEncodingSupportedError struct {
	Tried []string
}

func (e *NoEncodingSupportedError) Error() string {
	return "No supported encoding" + tried(e.Tried)
}

func (e *NoEncodingSupportedError) Is(target error) bool { return isDataFamily(target) }

func tried(names []string) string {
	if len(names) == 0 {
		return ""
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return " (tried " + strings.Join(quoted, ", ") + ")"
}
