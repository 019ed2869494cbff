package schemafile

import (
	"context"
	"fmt"
	"os"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/dsl"
)

// BuildError locates a bad declaration by JSON Pointer into the document.
type BuildError struct {
	Path string
	Line int
	Err  error
}

func (e *BuildError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("schemafile: %s (line %d): %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("schemafile: %s: %v", e.Path, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Load reads, parses and builds the schema document at path.
func Load(path string) (goclean.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(data)
}

// FromBytes parses and builds a schema document.
func FromBytes(data []byte) (goclean.Field, error) {
	n, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(n)
}

// Build turns a declaration tree into a Field tree. Declarations that would
// make a builder panic are reported as *BuildError instead.
func Build(n *Node) (goclean.Field, error) {
	return build(n, goclean.Root())
}

func build(n *Node, at goclean.PathRef) (goclean.Field, error) {
	if n == nil {
		return nil, &BuildError{Path: at.Pointer(), Err: fmt.Errorf("missing declaration")}
	}
	fail := func(format string, args ...any) (goclean.Field, error) {
		return nil, &BuildError{Path: at.Pointer(), Line: n.Line, Err: fmt.Errorf(format, args...)}
	}

	var (
		f   goclean.Field
		err error
	)
	switch n.Type {
	case "int", "float":
		s := dsl.Int()
		if n.Type == "float" {
			s = dsl.Float()
		}
		if n.Min != nil {
			if !isNumber(n.Min) {
				return fail("min must be a number, got %v", n.Min)
			}
			s.Min(n.Min)
		}
		if n.Max != nil {
			if !isNumber(n.Max) {
				return fail("max must be a number, got %v", n.Max)
			}
			s.Max(n.Max)
		}
		f = s
	case "bool":
		f = dsl.Bool()
	case "type":
		kinds := make([]goclean.Kind, 0, len(n.Kinds))
		for _, name := range n.Kinds {
			k := goclean.ParseKind(name)
			if k == goclean.KindInvalid {
				return fail("unknown kind %q", name)
			}
			kinds = append(kinds, k)
		}
		if len(kinds) == 0 {
			return fail("type requires at least one kind")
		}
		f = dsl.Type(kinds...)
	case "string":
		s := dsl.String()
		if n.MinLength != nil {
			s.MinLength(*n.MinLength)
		}
		if n.MaxLength != nil {
			s.MaxLength(*n.MaxLength)
		}
		if n.Regex != "" {
			if err := dsl.CompileRegex(n.Regex); err != nil {
				return fail("regex: %v", err)
			}
			s.Regex(n.Regex)
		}
		f = s
	case "list":
		f, err = buildList(n, at)
	case "dict":
		f, err = buildDict(n, at)
	case "time":
		f, err = buildTime(n, fail)
	case "option":
		inner, ierr := build(n.Field, at.Field("field"))
		if ierr != nil {
			return nil, ierr
		}
		f = dsl.Option(inner, normalizeAll(n.Options)...)
	case "":
		return fail("type is required")
	default:
		return fail("unknown type %q", n.Type)
	}
	if err != nil {
		return nil, err
	}
	if len(n.Options) > 0 && n.Type != "option" {
		f = dsl.Option(f, normalizeAll(n.Options)...)
	}
	p, perr := policyOf(n)
	if perr != nil {
		return fail("%v", perr)
	}
	if p.Default != nil && (p.OnMissing == goclean.UseDefault || p.OnError == goclean.UseDefault) {
		dv := p.Default
		if ts, ok := dv.(goclean.Timestamp); ok {
			dv = ts.ISO()
		}
		if _, derr := f.Clean(context.Background(), dv); derr != nil {
			return fail("default %v: %v", p.Default, derr)
		}
	}
	dsl.SetPolicy(f, p)
	return f, nil
}

func buildList(n *Node, at goclean.PathRef) (goclean.Field, error) {
	if n.Each != nil && len(n.Items) > 0 {
		return nil, &BuildError{Path: at.Pointer(), Line: n.Line, Err: fmt.Errorf("each and items are exclusive")}
	}
	l := dsl.List()
	if n.Length != nil {
		l = dsl.ListByLength(*n.Length)
	}
	if n.MinLength != nil {
		l.MinLength(*n.MinLength)
	}
	if n.MaxLength != nil {
		l.MaxLength(*n.MaxLength)
	}
	if n.Each != nil {
		each, err := build(n.Each, at.Field("each"))
		if err != nil {
			return nil, err
		}
		l.Each(each)
	}
	if len(n.Items) > 0 {
		items := make([]goclean.Field, len(n.Items))
		for i, it := range n.Items {
			if it == nil {
				continue
			}
			f, err := build(it, at.Field("items").Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = f
		}
		l.Items(items...)
		if n.Length == nil && n.MinLength == nil && n.MaxLength == nil {
			l.MinLength(len(items)).MaxLength(len(items))
		}
	}
	return l, nil
}

func buildDict(n *Node, at goclean.PathRef) (goclean.Field, error) {
	if n.Each != nil && len(n.Fields) > 0 {
		return nil, &BuildError{Path: at.Pointer(), Line: n.Line, Err: fmt.Errorf("each and fields are exclusive")}
	}
	d := dsl.Dict()
	if n.Each != nil {
		each, err := build(n.Each, at.Field("each"))
		if err != nil {
			return nil, err
		}
		d.Each(each)
	}
	for _, nf := range n.Fields {
		f, err := build(nf.Node, at.Field("fields").Field(nf.Name))
		if err != nil {
			return nil, err
		}
		d.Key(nf.Name, f)
	}
	return d, nil
}

func buildTime(n *Node, fail func(string, ...any) (goclean.Field, error)) (goclean.Field, error) {
	t := dsl.Time()
	if n.Min != nil {
		ts, err := timestampOf(n.Min)
		if err != nil {
			return fail("min: %v", err)
		}
		t.Min(ts)
	}
	if n.Max != nil {
		ts, err := timestampOf(n.Max)
		if err != nil {
			return fail("max: %v", err)
		}
		t.Max(ts)
	}
	if n.TimezoneAware != nil {
		t.TimezoneAware(*n.TimezoneAware)
	}
	if s, ok := n.Default.(string); ok {
		ts, err := goclean.ParseTimestamp(s)
		if err != nil {
			return fail("default: %v", err)
		}
		n.Default = ts
	}
	return t, nil
}

func timestampOf(v any) (goclean.Timestamp, error) {
	if ts, ok := goclean.TimestampOf(v); ok {
		return ts, nil
	}
	s, ok := v.(string)
	if !ok {
		return goclean.Timestamp{}, fmt.Errorf("expected an ISO-8601 string, got %v", v)
	}
	return goclean.ParseTimestamp(s)
}

func policyOf(n *Node) (goclean.Policy, error) {
	missing, err := goclean.ParseAction(n.Missing)
	if err != nil {
		return goclean.Policy{}, fmt.Errorf("missing: %w", err)
	}
	if n.Optional {
		if n.Missing != "" && missing != goclean.Skip {
			return goclean.Policy{}, fmt.Errorf("optional conflicts with missing: %s", n.Missing)
		}
		missing = goclean.Skip
	}
	onErr, err := goclean.ParseAction(n.Error)
	if err != nil {
		return goclean.Policy{}, fmt.Errorf("error: %w", err)
	}
	return goclean.Policy{OnMissing: missing, OnError: onErr, Default: normalize(n.Default)}, nil
}

func isNumber(v any) bool {
	k := goclean.KindOf(v)
	return k == goclean.KindInt || k == goclean.KindFloat
}

// normalize converts YAML-decoded values into the canonical value tree.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		return normalizeAll(t)
	}
	return goclean.Normalize(v)
}

func normalizeAll(vs []any) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = normalize(v)
	}
	return out
}
