package goclean_test

import (
	"errors"
	"testing"
	"time"

	goclean "github.com/reoring/goclean"
)

func TestParseTimestamp_Forms(t *testing.T) {
	cases := []struct {
		in    string
		aware bool
		iso   string
	}{
		{in: "2024-03-01T10:20:30Z", aware: true, iso: "2024-03-01T10:20:30+00:00"},
		{in: "2024-03-01T10:20:30+09:00", aware: true, iso: "2024-03-01T10:20:30+09:00"},
		{in: "2024-03-01 10:20:30-0500", aware: false},
		{in: "2024-03-01T10:20:30.25Z", aware: true, iso: "2024-03-01T10:20:30.250000+00:00"},
		{in: "2024-03-01T10:20:30", iso: "2024-03-01T10:20:30"},
		{in: "2024-03-01 10:20:30", iso: "2024-03-01T10:20:30"},
		{in: "2024-03-01T10:20", iso: "2024-03-01T10:20:00"},
		{in: "2024-03-01", iso: "2024-03-01T00:00:00"},
	}
	for _, tc := range cases {
		ts, err := goclean.ParseTimestamp(tc.in)
		if tc.iso == "" {
			// space separator with a compact offset is not an accepted form
			if err == nil {
				t.Fatalf("%q: expected failure, got %v", tc.in, ts)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if ts.Aware != tc.aware || ts.ISO() != tc.iso {
			t.Fatalf("%q: got aware=%v iso=%q", tc.in, ts.Aware, ts.ISO())
		}
	}
}

func TestParseTimestamp_Errors(t *testing.T) {
	if _, err := goclean.ParseTimestamp("12345-01-01"); !errors.Is(err, goclean.ErrTimestampOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	_, err := goclean.ParseTimestamp("not a date")
	if err == nil || err.Error() != `invalid isoformat string "not a date"` {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = goclean.ParseTimestamp("2020-13-01")
	if err == nil || err.Error() != `invalid isoformat string "2020-13-01": month out of range` {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTimestamp_CompareByInstant(t *testing.T) {
	a, _ := goclean.ParseTimestamp("2024-01-01T09:00:00+09:00")
	b, _ := goclean.ParseTimestamp("2024-01-01T00:00:00Z")
	if a.Compare(b) != 0 {
		t.Fatalf("expected equal instants")
	}
	naive, _ := goclean.ParseTimestamp("2024-01-01T00:00:01")
	if naive.Compare(b) <= 0 {
		t.Fatalf("naive timestamps compare as UTC")
	}
}

func TestNaiveAndTimestampOf(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	n := goclean.Naive(time.Date(2024, 5, 6, 7, 8, 9, 0, loc))
	if n.Aware || n.ISO() != "2024-05-06T07:08:09" {
		t.Fatalf("unexpected naive timestamp %v", n)
	}
	ts, ok := goclean.TimestampOf(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC))
	if !ok || !ts.Aware {
		t.Fatalf("time.Time must convert to aware timestamp")
	}
	if _, ok := goclean.TimestampOf("2024-05-06"); ok {
		t.Fatalf("strings are not timestamps")
	}
}
