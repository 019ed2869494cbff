package dsl

import (
	"context"
	"errors"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/i18n"
	js "github.com/reoring/goclean/jsonschema"
)

// TimeField parses ISO-8601 strings into goclean.Timestamp values.
type TimeField struct {
	base[*TimeField]
	min, max *goclean.Timestamp
	tzAware  *bool
}

// Time returns a timestamp field without constraints.
func Time() *TimeField {
	f := &TimeField{}
	f.self = f
	return f
}

// Min sets the inclusive lower bound.
func (f *TimeField) Min(t goclean.Timestamp) *TimeField { f.min = &t; return f }

// Max sets the inclusive upper bound.
func (f *TimeField) Max(t goclean.Timestamp) *TimeField { f.max = &t; return f }

// TimezoneAware requires parsed timestamps to be aware (true) or naive (false).
func (f *TimeField) TimezoneAware(aware bool) *TimeField { f.tzAware = &aware; return f }

func (f *TimeField) Clean(ctx context.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return kindSet{goclean.KindString}.check(v)
	}
	ts, err := goclean.ParseTimestamp(s)
	if errors.Is(err, goclean.ErrTimestampOverflow) {
		return nil, goclean.NewFieldError(goclean.CodeOverflow, i18n.T(i18n.MsgOverflow, nil))
	}
	if err != nil {
		return nil, goclean.NewFieldError(goclean.CodeInvalidFormat,
			i18n.T(i18n.MsgInvalidDatetime, map[string]string{"reason": err.Error()}))
	}
	if f.min != nil && ts.Compare(*f.min) < 0 {
		return nil, goclean.NewFieldError(goclean.CodeTooSmall,
			i18n.T(i18n.MsgTooSmall, map[string]string{"min": f.min.ISO()}))
	}
	if f.max != nil && ts.Compare(*f.max) > 0 {
		return nil, goclean.NewFieldError(goclean.CodeTooBig,
			i18n.T(i18n.MsgTooBig, map[string]string{"max": f.max.ISO()}))
	}
	if f.tzAware != nil && *f.tzAware != ts.Aware {
		msg := i18n.MsgTimezoneRejected
		if *f.tzAware {
			msg = i18n.MsgTimezoneRequired
		}
		return nil, goclean.NewFieldError(goclean.CodeTimezone, i18n.T(msg, nil))
	}
	return ts, nil
}

func (f *TimeField) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "string", Format: "date-time"}
	if ts, ok := goclean.TimestampOf(f.policy.Default); ok {
		s.Default = ts.ISO()
	}
	return s, nil
}
