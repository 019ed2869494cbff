package codec

// Default names used when a charset or content coding is left empty.
const (
	DefaultCharset  = "utf-8"
	DefaultEncoding = "identity"
)

// Registry pairs a charset registry with a content coding registry.
type Registry struct {
	Charsets *CharsetRegistry
	Contents *ContentRegistry
}

// NewRegistry returns a Registry with the built-in charsets and codings.
func NewRegistry() *Registry {
	return &Registry{Charsets: NewCharsetRegistry(), Contents: NewContentRegistry()}
}

// Default is the package-level registry used by the top-level functions.
var Default = NewRegistry()

// Encode converts s to bytes in charset, then applies the content coding.
// Empty names mean utf-8 and identity.
func (r *Registry) Encode(s, charset, encoding string) ([]byte, error) {
	b, err := r.Charsets.Encode(s, orDefault(charset, DefaultCharset))
	if err != nil {
		return nil, err
	}
	return r.Contents.Encode(b, orDefault(encoding, DefaultEncoding))
}

// Decode reverses Encode: it removes the content coding, then decodes the
// bytes in charset.
func (r *Registry) Decode(b []byte, charset, encoding string) (string, error) {
	raw, err := r.Contents.Decode(b, orDefault(encoding, DefaultEncoding))
	if err != nil {
		return "", err
	}
	return r.Charsets.Decode(raw, orDefault(charset, DefaultCharset))
}

func orDefault(name, def string) string {
	if normalizeName(name) == "" {
		return def
	}
	return name
}

// EncodeString converts s with the default registry.
func EncodeString(s, charset string) ([]byte, error) { return Default.Charsets.Encode(s, charset) }

// DecodeString converts b with the default registry.
func DecodeString(b []byte, charset string) (string, error) { return Default.Charsets.Decode(b, charset) }

// EncodeData applies a content coding with the default registry.
func EncodeData(b []byte, encoding string) ([]byte, error) { return Default.Contents.Encode(b, encoding) }

// DecodeData removes a content coding with the default registry.
func DecodeData(b []byte, encoding string) ([]byte, error) { return Default.Contents.Decode(b, encoding) }

// Encode runs Registry.Encode on the default registry.
func Encode(s, charset, encoding string) ([]byte, error) { return Default.Encode(s, charset, encoding) }

// Decode runs Registry.Decode on the default registry.
func Decode(b []byte, charset, encoding string) (string, error) {
	return Default.Decode(b, charset, encoding)
}

// RegisterCharset adds a charset to the default registry.
func RegisterCharset(c Charset, aliases ...string) { Default.Charsets.Register(c, aliases...) }

// RegisterContent adds a content coding to the default registry.
func RegisterContent(name string, c ContentCodec) { Default.Contents.Register(name, c) }
