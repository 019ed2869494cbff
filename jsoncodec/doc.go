// Package jsoncodec converts between JSON text and goclean value trees.
//
// Encoding understands goclean.Timestamp, time.Time and the Serializable
// hook in addition to plain trees. Decoding produces map[string]any, []any,
// string, bool, int64, float64 and nil.
package jsoncodec
