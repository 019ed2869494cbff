package schemafile_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/dsl"
	"github.com/reoring/goclean/schemafile"
)

const exampleFour = `
type: dict
fields:
  a: {type: int}
  b: {type: string, missing: default, default: z}
`

func TestFromBytes_DictWithDefault(t *testing.T) {
	f, err := schemafile.FromBytes([]byte(exampleFour))
	require.NoError(t, err)

	ctx := context.Background()
	v, err := f.Clean(ctx, map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(1), "b": "z"}, v)

	_, err = f.Clean(ctx, map[string]any{"a": 1, "c": 2})
	var fe *goclean.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, goclean.CodeUnknownKey, fe.Code)
	assert.Equal(t, `Unexpected fields "c"`, fe.Message)
}

func TestFromBytes_KeyOrderFollowsDocument(t *testing.T) {
	f, err := schemafile.FromBytes([]byte("type: dict\nfields:\n  z: {type: int}\n  a: {type: int}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, f.(*dsl.DictField).KeyNames())
}

func TestFromBytes_JSONDocument(t *testing.T) {
	doc := `{"type": "list", "items": [{"type": "int", "min": 0}, null, {"type": "string", "options": ["x", "y"]}]}`
	f, err := schemafile.FromBytes([]byte(doc))
	require.NoError(t, err)

	ctx := context.Background()
	v, err := f.Clean(ctx, []any{3, map[string]any{"any": true}, "y"})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3), map[string]any{"any": true}, "y"}, v)

	_, err = f.Clean(ctx, []any{3, nil})
	assert.Error(t, err, "positional lists default to exact length")

	_, err = f.Clean(ctx, []any{3, nil, "z"})
	assert.Equal(t, "/2", goclean.Pointer(err))
}

func TestFromBytes_AllTypes(t *testing.T) {
	doc := `
type: dict
fields:
  n:    {type: float, min: 0.5, max: 10, error: default, default: 1}
  flag: {type: bool, optional: true}
  tags: {type: list, max_length: 2, each: {type: string, min_length: 1}}
  meta: {type: dict, each: {type: type, kinds: [string, null]}}
  at:   {type: time, min: "2024-01-01T00:00:00Z", timezone_aware: true, missing: skip}
  lvl:  {type: option, field: {type: int}, options: [1, 2, 3]}
`
	f, err := schemafile.FromBytes([]byte(doc))
	require.NoError(t, err)

	v, err := f.Clean(context.Background(), map[string]any{
		"n":    "bad",
		"tags": []any{"a"},
		"meta": map[string]any{"k": nil},
		"lvl":  2,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"n":    int64(1),
		"tags": []any{"a"},
		"meta": map[string]any{"k": nil},
		"lvl":  int64(2),
	}, v)

	_, err = f.Clean(context.Background(), map[string]any{
		"n": 1, "tags": []any{}, "meta": map[string]any{}, "lvl": 1,
		"at": "2023-06-01T00:00:00Z",
	})
	assert.Equal(t, "/at", goclean.Pointer(err))
}

func TestBuild_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown type":  "type: blob",
		"missing type":  "min: 1",
		"bad regex":     "type: string\nregex: '('",
		"bad kind":      "type: type\nkinds: [integer]",
		"bad bound":     "type: int\nmin: zero",
		"bad action":    "type: int\nmissing: ignore",
		"bad time":      "type: time\nmin: yesterday",
		"nested":        "type: dict\nfields:\n  a: {type: list, each: {type: nope}}",
		"exclusive":     "type: list\neach: {type: int}\nitems: [{type: int}]",
		"option field":  "type: option\noptions: [1]",
		"optional+miss": "type: int\noptional: true\nmissing: raise",
		"bad default":   "type: int\nmissing: default\ndefault: x",
		"out of bounds": "type: int\nmin: 1\nerror: default\ndefault: 0",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schemafile.FromBytes([]byte(doc))
			var be *schemafile.BuildError
			require.ErrorAs(t, err, &be)
		})
	}

	_, err := schemafile.FromBytes([]byte("type: dict\nfields:\n  n: {type: int, missing: default, default: x}"))
	var dbe *schemafile.BuildError
	require.ErrorAs(t, err, &dbe)
	assert.Equal(t, "/fields/n", dbe.Path)

	_, err = schemafile.FromBytes([]byte("type: time\nmin: '2024-01-01T00:00:00Z'\nmissing: default\ndefault: '2024-06-01T00:00:00Z'"))
	assert.NoError(t, err)
	_, err = schemafile.FromBytes([]byte("type: time\nmin: '2024-01-01T00:00:00Z'\nmissing: default\ndefault: '2023-06-01T00:00:00Z'"))
	assert.ErrorAs(t, err, &dbe)

	_, err = schemafile.FromBytes([]byte("type: int\ndefault: x"))
	assert.NoError(t, err, "an unused default is not checked")

	_, err = schemafile.FromBytes([]byte("type: dict\nfields:\n  a: {type: list, each: {type: nope}}"))
	var be *schemafile.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "/fields/a/each", be.Path)
}

func TestParse_Strictness(t *testing.T) {
	_, err := schemafile.Parse([]byte("type: int\nminimum: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key "minimum"`)

	_, err = schemafile.Parse([]byte("type: dict\nfields:\n  a: {type: int}\n  a: {type: string}\n"))
	var de *schemafile.DuplicateKeyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "a", de.Key)

	_, err = schemafile.Parse([]byte(""))
	assert.True(t, errors.Is(err, schemafile.ErrEmptyDocument))
	_, err = schemafile.Parse([]byte("[1, 2]"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleFour), 0o600))
	f, err := schemafile.Load(path)
	require.NoError(t, err)
	_, err = f.Clean(context.Background(), map[string]any{"a": 1})
	assert.NoError(t, err)

	_, err = schemafile.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
