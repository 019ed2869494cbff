package goclean

import (
	"context"
	"errors"
	"fmt"

	"github.com/reoring/goclean/i18n"
)

// Action selects what a Field does when its value is missing or fails to clean.
type Action int

const (
	Raise      Action = iota // Fail the enclosing clean.
	UseDefault               // Substitute Policy.Default.
	Skip                     // Omit the slot from the output.
)

func (a Action) String() string {
	switch a {
	case Raise:
		return "raise"
	case UseDefault:
		return "default"
	case Skip:
		return "skip"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction maps "raise", "default" and "skip" to an Action. An empty
// string yields Raise.
func ParseAction(s string) (Action, error) {
	switch s {
	case "", "raise":
		return Raise, nil
	case "default":
		return UseDefault, nil
	case "skip":
		return Skip, nil
	}
	return Raise, fmt.Errorf("goclean: unknown action %q", s)
}

// Policy is the presence/error policy attached to every Field.
// Default is only consulted when one of the actions is UseDefault.
type Policy struct {
	OnMissing Action
	OnError   Action
	Default   any
}

// Field validates and normalizes one shape of value.
//
// Implementations must be safe for concurrent use once built: Clean may not
// mutate the Field. Cleaning failures are reported as *FieldError; any other
// error is treated as a programming or environment fault and propagates as is.
type Field interface {
	Clean(ctx context.Context, v any) (any, error)
	Policy() Policy
}

// CleanAndAdd applies f's policy to one input slot. present tells whether the
// slot exists in the input; add attaches a value to the caller's container.
//
//   - present and clean ok: add(cleaned)
//   - present and clean failed: Raise returns the failure, UseDefault adds the
//     default, Skip adds nothing
//   - missing: Raise fails with CodeRequired, UseDefault adds the default,
//     Skip adds nothing
func CleanAndAdd(ctx context.Context, f Field, present bool, v any, add func(any)) error {
	p := f.Policy()
	if !present {
		switch p.OnMissing {
		case UseDefault:
			add(p.Default)
		case Skip:
		default:
			return NewFieldError(CodeRequired, i18n.T(i18n.MsgRequired, nil))
		}
		return nil
	}
	cleaned, err := f.Clean(ctx, v)
	if err == nil {
		add(cleaned)
		return nil
	}
	if !IsFieldError(err) {
		return err
	}
	switch p.OnError {
	case UseDefault:
		add(p.Default)
	case Skip:
	default:
		return err
	}
	return nil
}

// Handler consumes cleaned request data and produces response data.
type Handler[R any] func(ctx context.Context, data any) (R, error)

// Wrap returns a Handler that cleans its input against f before calling h.
// The top-level input is always treated as present. A cleaning failure is
// returned as *RequestError chained to the *FieldError; h is not called.
// Errors produced by h itself are returned unchanged.
func Wrap[R any](f Field, h Handler[R]) Handler[R] {
	if f == nil {
		panic("goclean: Wrap requires a non-nil Field")
	}
	if h == nil {
		panic("goclean: Wrap requires a non-nil Handler")
	}
	return func(ctx context.Context, data any) (R, error) {
		cleaned, err := Clean(ctx, f, data)
		if err != nil {
			var zero R
			return zero, err
		}
		return h(ctx, cleaned)
	}
}

// Clean runs f against v at the request boundary, translating cleaning
// failures into *RequestError.
func Clean(ctx context.Context, f Field, v any) (any, error) {
	cleaned, err := f.Clean(ctx, v)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return nil, &RequestError{Message: i18n.T(i18n.MsgBadRequest, nil), Cause: err}
		}
		return nil, err
	}
	return cleaned, nil
}
