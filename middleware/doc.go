// Package middleware puts goclean fields at an HTTP boundary.
//
// Requests are decoded with their Content-Encoding and the charset of their
// Content-Type, parsed as JSON and cleaned. Responses are serialized as JSON
// and negotiated against Accept-Charset and Accept-Encoding.
//
//	http.Handle("/items", middleware.Handler(schema, createItem,
//	    middleware.WithLogger(log), middleware.WithEncodings("gzip")))
//
// Failures map to status codes through StatusFor: validation and malformed
// bodies 400, oversized bodies 413, unknown request charsets or codings 415,
// failed negotiation 406, everything else 500. Error bodies look like
// {"error": "...", "issues": [{"path": "/a", "code": "...", "message": "..."}]}.
//
// Framework adapters live in the gin, echo and fiber subpackages.
package middleware
