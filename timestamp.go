package goclean

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Timestamp is a point in time that may or may not carry a timezone.
// A naive timestamp (Aware == false) stores its wall clock in UTC.
type Timestamp struct {
	Time  time.Time
	Aware bool
}

// Aware wraps t as a timezone-aware Timestamp.
func Aware(t time.Time) Timestamp { return Timestamp{Time: t, Aware: true} }

// Naive drops the location of t, keeping its wall clock.
func Naive(t time.Time) Timestamp {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return Timestamp{Time: time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)}
}

// TimestampOf accepts a Timestamp or a time.Time (treated as aware).
func TimestampOf(v any) (Timestamp, bool) {
	switch t := v.(type) {
	case Timestamp:
		return t, true
	case time.Time:
		return Aware(t), true
	}
	return Timestamp{}, false
}

// Compare orders two timestamps by instant.
func (t Timestamp) Compare(u Timestamp) int { return t.Time.Compare(u.Time) }

// ISO formats t as ISO-8601: microseconds are printed only when non-zero and
// the UTC offset only for aware timestamps.
func (t Timestamp) ISO() string {
	layout := "2006-01-02T15:04:05"
	if t.Time.Nanosecond()/1000 != 0 {
		layout += ".000000"
	}
	if t.Aware {
		layout += "-07:00"
	}
	return t.Time.Format(layout)
}

func (t Timestamp) String() string { return t.ISO() }

// ErrTimestampOverflow reports a timestamp whose year cannot be represented.
var ErrTimestampOverflow = errors.New("timestamp out of range")

var (
	awareLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

// ParseTimestamp parses an ISO-8601 date or date-time. Inputs carrying "Z"
// or a numeric offset produce aware timestamps; the others are naive.
// Fractional seconds are accepted after the seconds field.
func ParseTimestamp(s string) (Timestamp, error) {
	if i := strings.IndexByte(s, '-'); i > 4 && isDigits(s[:i]) {
		return Timestamp{}, ErrTimestampOverflow
	}
	for _, l := range awareLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return Aware(t), nil
		}
	}
	var lastErr error
	for _, l := range naiveLayouts {
		t, err := time.Parse(l, s)
		if err == nil {
			return Timestamp{Time: t}, nil
		}
		lastErr = err
	}
	var pe *time.ParseError
	if errors.As(lastErr, &pe) && strings.Contains(pe.Message, "out of range") {
		return Timestamp{}, fmt.Errorf("invalid isoformat string %q%s", s, pe.Message)
	}
	return Timestamp{}, fmt.Errorf("invalid isoformat string %q", s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
