package goclean

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/goclean/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeOverflow      = "overflow"
	CodeTimezone      = "timezone"
	// CodeInvalidItem marks a composite failure wrapping a child failure.
	CodeInvalidItem = "invalid_item"
)

// FieldError is the internal cleaning failure. Composite fields wrap the
// failure of a child slot into a new FieldError whose Item names the slot
// (an int index or a string key) and whose Cause is the child failure.
//
// FieldError is not meant for end users; Clean and Wrap translate it into
// *RequestError at the request boundary.
type FieldError struct {
	Code    string
	Message string
	Item    any
	Cause   error
}

// NewFieldError returns a leaf cleaning failure.
func NewFieldError(code, msg string) *FieldError {
	return &FieldError{Code: code, Message: msg}
}

// WrapItem wraps a child failure with the index or key of its slot. Errors
// that are not cleaning failures are returned unchanged.
func WrapItem(item any, err error) error {
	if err == nil || !IsFieldError(err) {
		return err
	}
	var label string
	switch it := item.(type) {
	case string:
		label = strconv.Quote(it)
	default:
		label = fmt.Sprint(it)
	}
	return &FieldError{
		Code:    CodeInvalidItem,
		Message: i18n.T(i18n.MsgItem, map[string]string{"item": label}),
		Item:    item,
		Cause:   err,
	}
}

func (e *FieldError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *FieldError) Unwrap() error { return e.Cause }

// IsFieldError reports whether err is or wraps a *FieldError.
func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}

// RequestError is the public validation failure produced by Clean and Wrap.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RequestError) Unwrap() error { return e.Cause }

// Issues flattens the cleaning failure behind the request error.
func (e *RequestError) Issues() Issues { return ToIssues(e.Cause) }

// Issue represents a single validation entry.
type Issue struct {
	Path    string `json:"path"`    // JSON Pointer (for example: /items/2/price).
	Code    string `json:"code"`    // One of the codes listed above.
	Message string `json:"message"` // Message of the innermost failure.
	Cause   error  `json:"-"`
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ToIssues renders a cleaning failure chain as Issues. The chain of
// FieldErrors becomes a single Issue located at the innermost slot.
func ToIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: err.Error(), Cause: err}}
	}
	path := Root()
	leaf := fe
	for {
		if leaf.Item == nil {
			break
		}
		switch it := leaf.Item.(type) {
		case int:
			path = path.Index(it)
		default:
			path = path.Field(fmt.Sprint(it))
		}
		var next *FieldError
		if !errors.As(leaf.Cause, &next) {
			break
		}
		leaf = next
	}
	return Issues{path.Issue(leaf.Code, leaf.Message, leaf)}
}

// Pointer returns the JSON Pointer of the innermost slot of a cleaning
// failure chain ("/" for a top-level failure).
func Pointer(err error) string {
	iss := ToIssues(err)
	if len(iss) == 0 {
		return "/"
	}
	return iss[0].Path
}
