// Package dsl provides the field builders for goclean.
//
// Overview
//   - Leaf fields: Type(kinds...), Bool(), Scalar(kinds...), Int(), Float(), String(), Time().
//   - Composite fields: List() with Each/Items, ListByLength, ListByFields; Dict() with Each/Key/Keys.
//   - Option(field, options...): restricts another field to a fixed set of values.
//   - Every builder carries OnMissing/OnError/Default/Optional for its slot policy.
//
// Builders mutate and return themselves while a schema is being declared.
// Once handed to goclean.Wrap (or any other cleaning call) a field tree must
// not be changed; it can then be shared by concurrent requests.
//
// Misconfiguration (a regex that does not compile, a nil child field, a
// non-numeric bound) panics immediately, so broken schemas fail at startup.
//
// Example
//
//	schema := dsl.Dict().
//	    Key("id", dsl.Int().Min(1)).
//	    Key("tags", dsl.List().MaxLength(8).Each(dsl.String().MinLength(1))).
//	    Key("kind", dsl.Option(dsl.String(), "a", "b").OnMissing(goclean.UseDefault).Default("a"))
//
//	cleaned, err := schema.Clean(ctx, input)
//
// File layout (roles)
//   - base.go: shared policy methods and kind checks.
//   - scalar.go, string.go, time.go, option.go: leaf fields.
//   - list.go, dict.go: composite fields wrapping child failures with their index or key.
//   - export.go: JSON Schema projection.
package dsl
