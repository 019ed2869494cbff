// Package goclean provides:
//
// - A Field contract for validating and normalizing untrusted, already decoded input
// - Per-field presence and error policies (Raise / UseDefault / Skip) applied by CleanAndAdd
// - A schema-application combinator (Wrap) that turns cleaning failures into RequestError
// - The value-tree model shared by the codecs (Kind, Timestamp, Equal)
//
// Design policy:
// - Keep only the contract in the root package; field builders live under dsl/.
// - Place the JSON codec under jsoncodec/, charset/content codecs under codec/.
// - HTTP boundary helpers live under middleware/ and never leak FieldError.
//
// Typical usage:
//
//	schema := dsl.Dict().
//	    Key("a", dsl.Int().Min(0)).
//	    Key("b", dsl.String().OnMissing(goclean.UseDefault).Default("z"))
//
//	handle := goclean.Wrap(schema, func(ctx context.Context, data any) (any, error) {
//	    return data, nil
//	})
//	out, err := handle(ctx, input)
package goclean
