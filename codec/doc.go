// Package codec converts strings to bytes and back through a charset and an
// HTTP content coding, and negotiates both against client preferences.
//
//	data, err := codec.Encode("hello", "utf-8", "gzip")
//	s, err := codec.Decode(data, "utf-8", "gzip")
//
//	n, err := codec.TryEncode(body,
//	    codec.Preferences(r.Header.Get("Accept-Charset"), []string{"utf-8"}),
//	    codec.EncodingPreferences(r.Header.Get("Accept-Encoding"), []string{"br", "gzip"}))
//
// Built-in charsets are utf-8, ascii and latin-1; any other IANA name or
// WHATWG label known to golang.org/x/text resolves on demand. Built-in
// codings are identity, gzip, deflate, br and zstd.
package codec
