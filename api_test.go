package goclean_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	goclean "github.com/reoring/goclean"
)

// stubField returns a fixed result and records how often it ran.
type stubField struct {
	policy goclean.Policy
	out    any
	err    error
	calls  int
}

func (s *stubField) Clean(ctx context.Context, v any) (any, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.out != nil {
		return s.out, nil
	}
	return v, nil
}

func (s *stubField) Policy() goclean.Policy { return s.policy }

func collect(t *testing.T, f goclean.Field, present bool, v any) ([]any, error) {
	t.Helper()
	var out []any
	err := goclean.CleanAndAdd(context.Background(), f, present, v, func(x any) { out = append(out, x) })
	return out, err
}

func TestCleanAndAdd_PolicyMatrix(t *testing.T) {
	bad := goclean.NewFieldError(goclean.CodeInvalidType, "nope")
	cases := []struct {
		name    string
		policy  goclean.Policy
		present bool
		err     error
		want    []any
		code    string
	}{
		{name: "present ok", present: true, want: []any{"in"}},
		{name: "present ok ignores policies", policy: goclean.Policy{OnMissing: goclean.Skip, OnError: goclean.Skip}, present: true, want: []any{"in"}},
		{name: "invalid raise", present: true, err: bad, code: goclean.CodeInvalidType},
		{name: "invalid default", policy: goclean.Policy{OnError: goclean.UseDefault, Default: "d"}, present: true, err: bad, want: []any{"d"}},
		{name: "invalid skip", policy: goclean.Policy{OnError: goclean.Skip}, present: true, err: bad},
		{name: "missing raise", code: goclean.CodeRequired},
		{name: "missing default", policy: goclean.Policy{OnMissing: goclean.UseDefault, Default: 42}, want: []any{42}},
		{name: "missing default nil", policy: goclean.Policy{OnMissing: goclean.UseDefault}, want: []any{nil}},
		{name: "missing skip", policy: goclean.Policy{OnMissing: goclean.Skip}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &stubField{policy: tc.policy, err: tc.err}
			got, err := collect(t, f, tc.present, "in")
			if tc.code != "" {
				var fe *goclean.FieldError
				if !errors.As(err, &fe) || fe.Code != tc.code {
					t.Fatalf("expected %s, got %v", tc.code, err)
				}
				if len(got) != 0 {
					t.Fatalf("nothing must be added on failure, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestCleanAndAdd_MissingDoesNotClean(t *testing.T) {
	f := &stubField{policy: goclean.Policy{OnMissing: goclean.Skip}}
	if _, err := collect(t, f, false, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.calls != 0 {
		t.Fatalf("Clean must not run for a missing slot")
	}
}

func TestCleanAndAdd_MissingMessage(t *testing.T) {
	_, err := collect(t, &stubField{}, false, nil)
	if err == nil || err.Error() != "Required but missing" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCleanAndAdd_ForeignErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	f := &stubField{policy: goclean.Policy{OnError: goclean.Skip}, err: boom}
	_, err := collect(t, f, true, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected foreign error, got %v", err)
	}
}

func TestWrap_CleansBeforeHandler(t *testing.T) {
	f := &stubField{out: "cleaned"}
	var seen any
	h := goclean.Wrap[string](f, func(ctx context.Context, data any) (string, error) {
		seen = data
		return "ok", nil
	})
	res, err := h(context.Background(), "raw")
	if err != nil || res != "ok" || seen != "cleaned" {
		t.Fatalf("res=%v err=%v seen=%v", res, err, seen)
	}
}

func TestWrap_FailureSkipsHandler(t *testing.T) {
	// A missing policy on the top-level field has no effect: the input counts
	// as present.
	f := &stubField{
		policy: goclean.Policy{OnMissing: goclean.Skip, OnError: goclean.Skip},
		err:    goclean.NewFieldError(goclean.CodeTooSmall, "Value must be >= 0"),
	}
	called := false
	h := goclean.Wrap[int](f, func(ctx context.Context, data any) (int, error) {
		called = true
		return 1, nil
	})
	res, err := h(context.Background(), -1)
	if called || res != 0 {
		t.Fatalf("handler must not run, res=%v", res)
	}
	var re *goclean.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestError, got %T", err)
	}
	if re.Message != "Request validation error" {
		t.Fatalf("unexpected message %q", re.Message)
	}
	if !goclean.IsFieldError(re.Cause) {
		t.Fatalf("cause must be the cleaning failure, got %v", re.Cause)
	}
	if re.Error() != "Request validation error: Value must be >= 0" {
		t.Fatalf("unexpected error string %q", re.Error())
	}
}

func TestWrap_HandlerErrorUnchanged(t *testing.T) {
	boom := errors.New("handler failed")
	h := goclean.Wrap[any](&stubField{}, func(ctx context.Context, data any) (any, error) { return nil, boom })
	if _, err := h(context.Background(), 1); err != boom {
		t.Fatalf("expected handler error unchanged, got %v", err)
	}
}

func TestWrap_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	goclean.Wrap[any](nil, func(ctx context.Context, data any) (any, error) { return nil, nil })
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]goclean.Action{"": goclean.Raise, "raise": goclean.Raise, "default": goclean.UseDefault, "skip": goclean.Skip} {
		got, err := goclean.ParseAction(in)
		if err != nil || got != want {
			t.Fatalf("ParseAction(%q) = %v, %v", in, got, err)
		}
		if in != "" && got.String() != in {
			t.Fatalf("String() = %q, want %q", got.String(), in)
		}
	}
	if _, err := goclean.ParseAction("ignore"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := goclean.Issues{
		{Path: "/a", Code: goclean.CodeInvalidType},
		{Path: "/b", Code: goclean.CodeUnknownKey},
		{Path: "/c", Code: goclean.CodeTooShort},
		{Path: "/d", Code: goclean.CodeTooLong},
	}
	want := "invalid_type at /a; unknown_key at /b; too_short at /c; ... (total 4)"
	if s := iss.Error(); s != want {
		t.Fatalf("got %q want %q", s, want)
	}
}
