// Package schemafile builds goclean field trees from YAML or JSON documents.
//
//	type: dict
//	fields:
//	  id:   {type: int, min: 1}
//	  name: {type: string, min_length: 1, regex: "[a-z]+"}
//	  kind: {type: string, options: [a, b], missing: default, default: a}
//	  tags: {type: list, max_length: 8, each: {type: string}}
//	  at:   {type: time, timezone_aware: true, optional: true}
//
// Types: int, float, bool, string, list, dict, time, option (with field and
// options) and type (with kinds). Any declaration accepts missing/error
// actions (raise, default, skip), default, optional and options. Dict keys
// are processed in document order.
package schemafile
