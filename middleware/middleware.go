package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/codec"
	"github.com/reoring/goclean/jsoncodec"
)

// ctxKeyCleaned is a typed context key for storing the cleaned request value.
type ctxKeyCleaned struct{}

// ctxKeyRequestID is a typed context key for the request id.
type ctxKeyRequestID struct{}

// cleanedValue boxes the stored value so that a cleaned nil is told apart
// from an absent one.
type cleanedValue struct{ v any }

// ContextWithCleaned attaches the cleaned request value to the context.
func ContextWithCleaned(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, ctxKeyCleaned{}, cleanedValue{v: v})
}

// CleanedFromContext retrieves the cleaned request value from context.
func CleanedFromContext(ctx context.Context) (any, bool) {
	c, ok := ctx.Value(ctxKeyCleaned{}).(cleanedValue)
	return c.v, ok
}

// ContextWithRequestID attaches a request id to the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}

// RequestIDFromContext returns the request id stored by the middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID{}).(string)
	return id
}

// Options configures the HTTP boundary.
type Options struct {
	// Registry resolves charsets and content codings.
	Registry *codec.Registry
	// Charsets are offered for responses when the client sends no
	// Accept-Charset or sends "*".
	Charsets []string
	// Encodings are offered for responses in server preference order;
	// identity is always appended unless the client refuses it.
	Encodings []string
	// JSON tunes request decoding and response encoding.
	JSON []jsoncodec.Option
	// MaxBodyBytes caps the request body before and after decompression.
	MaxBodyBytes int64
	// Logger receives request failures; the zero value logs nothing.
	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithRegistry sets the charset and content coding registry.
func WithRegistry(r *codec.Registry) Option { return func(o *Options) { o.Registry = r } }

// WithCharsets sets the response charsets offered by default.
func WithCharsets(cs ...string) Option { return func(o *Options) { o.Charsets = cs } }

// WithEncodings sets the response content codings offered.
func WithEncodings(es ...string) Option { return func(o *Options) { o.Encodings = es } }

// WithJSON sets the JSON codec options.
func WithJSON(opts ...jsoncodec.Option) Option { return func(o *Options) { o.JSON = opts } }

// WithMaxBodyBytes caps request bodies; 0 disables the cap.
func WithMaxBodyBytes(n int64) Option { return func(o *Options) { o.MaxBodyBytes = n } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// DefaultOptions returns a recommended default for HTTP JSON boundaries.
//   - utf-8 responses, br/gzip/deflate/zstd compression when accepted
//   - duplicate JSON keys are errors
//   - bodies up to 1 MiB
func DefaultOptions() Options {
	return Options{
		Registry:     codec.Default,
		Charsets:     []string{codec.DefaultCharset},
		Encodings:    []string{"br", "gzip", "deflate", "zstd"},
		JSON:         []jsoncodec.Option{jsoncodec.WithRejectDuplicateKeys(true)},
		MaxBodyBytes: 1 << 20,
		Logger:       zap.NewNop(),
	}
}

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Registry == nil {
		o.Registry = codec.Default
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// ErrBodyTooLarge is returned when a request body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// ErrorPayload shapes an error for JSON responses. Validation failures carry
// their Issues.
func ErrorPayload(err error) map[string]any {
	var re *goclean.RequestError
	if errors.As(err, &re) {
		return map[string]any{"error": re.Message, "issues": re.Issues()}
	}
	if iss, ok := goclean.AsIssues(err); ok {
		return map[string]any{"error": err.Error(), "issues": iss}
	}
	return map[string]any{"error": err.Error()}
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	var (
		re *goclean.RequestError
		de *jsoncodec.DecodeError
		uc *codec.UnknownCharsetError
		ue *codec.UnknownEncodingTypeError
		nc *codec.NoCharsetSupportedError
		ne *codec.NoEncodingSupportedError
	)
	switch {
	case errors.As(err, &re), errors.As(err, &de):
		return http.StatusBadRequest
	case errors.Is(err, ErrBodyTooLarge), errors.Is(err, codec.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &uc), errors.As(err, &ue):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &nc), errors.As(err, &ne):
		return http.StatusNotAcceptable
	case errors.Is(err, codec.ErrEncoding):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
