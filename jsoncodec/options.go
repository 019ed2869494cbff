package jsoncodec

// Options tunes encoding and decoding. The zero value is not the default;
// start from Defaults or pass Option funcs.
type Options struct {
	Indent              int  // spaces per level; 0 produces compact output
	EnsureASCII         bool // escape every non-ASCII character as \uXXXX
	AllowEmpty          bool // blank input decodes to nil instead of failing
	RejectDuplicateKeys bool // a repeated object key fails decoding
}

// Defaults returns the options used when none are given.
func Defaults() Options {
	return Options{EnsureASCII: true, AllowEmpty: true}
}

// Option mutates Options.
type Option func(*Options)

// WithIndent pretty-prints with n spaces per nesting level.
func WithIndent(n int) Option { return func(o *Options) { o.Indent = n } }

// WithEnsureASCII toggles escaping of non-ASCII characters.
func WithEnsureASCII(on bool) Option { return func(o *Options) { o.EnsureASCII = on } }

// WithAllowEmpty toggles whether blank input decodes to nil.
func WithAllowEmpty(on bool) Option { return func(o *Options) { o.AllowEmpty = on } }

// WithRejectDuplicateKeys toggles duplicate key detection.
func WithRejectDuplicateKeys(on bool) Option { return func(o *Options) { o.RejectDuplicateKeys = on } }

// WithOptions replaces all settings at once.
func WithOptions(v Options) Option { return func(o *Options) { *o = v } }

func build(opts []Option) Options {
	o := Defaults()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
