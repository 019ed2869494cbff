package codec

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// Charset converts between Go strings and bytes in one character encoding.
// Both directions are strict: unrepresentable text and invalid input fail.
type Charset interface {
	Name() string
	Encode(s string) ([]byte, error)
	Decode(b []byte) (string, error)
}

var (
	errInvalidUTF8 = errors.New("invalid UTF-8")
	errNonASCII    = errors.New("ordinal not in range(128)")
)

type utf8Charset struct{}

func (utf8Charset) Name() string { return "utf-8" }

func (utf8Charset) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, errInvalidUTF8
	}
	return []byte(s), nil
}

func (utf8Charset) Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errInvalidUTF8
	}
	return string(b), nil
}

type asciiCharset struct{}

func (asciiCharset) Name() string { return "ascii" }

func (asciiCharset) Encode(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return nil, errNonASCII
		}
	}
	return []byte(s), nil
}

func (asciiCharset) Decode(b []byte) (string, error) {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return "", errNonASCII
		}
	}
	return string(b), nil
}

// textCharset adapts a golang.org/x/text encoding.
type textCharset struct {
	name string
	enc  encoding.Encoding
}

// NewTextCharset wraps an x/text encoding as a Charset.
func NewTextCharset(name string, enc encoding.Encoding) Charset {
	return textCharset{name: name, enc: enc}
}

func (c textCharset) Name() string { return c.name }

func (c textCharset) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, errInvalidUTF8
	}
	return c.enc.NewEncoder().Bytes([]byte(s))
}

func (c textCharset) Decode(b []byte) (string, error) {
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// CharsetRegistry resolves charset names. Registered names win; other names
// fall back to the IANA registry and then to WHATWG labels.
type CharsetRegistry struct {
	mu     sync.RWMutex
	byName map[string]Charset
}

// NewCharsetRegistry returns a registry preloaded with utf-8, ascii and
// latin-1 under their common aliases.
func NewCharsetRegistry() *CharsetRegistry {
	r := &CharsetRegistry{byName: map[string]Charset{}}
	r.Register(utf8Charset{}, "utf8", "utf_8", "u8")
	r.Register(asciiCharset{}, "us-ascii", "646")
	r.Register(NewTextCharset("latin-1", charmap.ISO8859_1), "latin1", "iso-8859-1", "iso8859-1", "l1")
	return r
}

// Register adds c under its name and the given aliases, replacing earlier
// registrations.
func (r *CharsetRegistry) Register(c Charset, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[normalizeName(c.Name())] = c
	for _, a := range aliases {
		r.byName[normalizeName(a)] = c
	}
}

// Lookup resolves name or returns *UnknownCharsetError.
func (r *CharsetRegistry) Lookup(name string) (Charset, error) {
	key := normalizeName(name)
	r.mu.RLock()
	c, ok := r.byName[key]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}
	if key != "" {
		if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
			return NewTextCharset(key, enc), nil
		}
		if enc, err := htmlindex.Get(key); err == nil && enc != nil {
			return NewTextCharset(key, enc), nil
		}
	}
	return nil, &UnknownCharsetError{Charset: name}
}

// Names lists the registered names and aliases in sorted order.
func (r *CharsetRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Encode converts s to bytes in charset.
func (r *CharsetRegistry) Encode(s, charset string) ([]byte, error) {
	c, err := r.Lookup(charset)
	if err != nil {
		return nil, err
	}
	b, err := c.Encode(s)
	if err != nil {
		return nil, &StringEncodingError{Charset: charset, Op: OpEncode, Cause: err}
	}
	return b, nil
}

// Decode converts bytes in charset to a string.
func (r *CharsetRegistry) Decode(b []byte, charset string) (string, error) {
	c, err := r.Lookup(charset)
	if err != nil {
		return "", err
	}
	s, err := c.Decode(b)
	if err != nil {
		return "", &StringEncodingError{Charset: charset, Op: OpDecode, Cause: err}
	}
	return s, nil
}

func normalizeName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
