package codec

import "errors"

// Negotiated is the outcome of TryEncode.
type Negotiated struct {
	Data     []byte
	Charset  string
	Encoding string
}

// TryEncode encodes s with the first charset in charsets that can represent
// it, then compresses the bytes with the first coding in encodings that
// succeeds. Unknown names are skipped like failing ones. A nil charsets list
// means ["utf-8"] and a nil encodings list means ["identity"].
func (r *Registry) TryEncode(s string, charsets, encodings []string) (Negotiated, error) {
	if charsets == nil {
		charsets = []string{DefaultCharset}
	}
	if encodings == nil {
		encodings = []string{DefaultEncoding}
	}
	var (
		raw     []byte
		charset string
		ok      bool
	)
	for _, cs := range charsets {
		b, err := r.Charsets.Encode(s, cs)
		if err != nil {
			if errors.Is(err, ErrStringEncoding) {
				continue
			}
			return Negotiated{}, err
		}
		raw, charset, ok = b, cs, true
		break
	}
	if !ok {
		return Negotiated{}, &NoCharsetSupportedError{Tried: append([]string(nil), charsets...)}
	}
	for _, enc := range encodings {
		b, err := r.Contents.Encode(raw, enc)
		if err != nil {
			if errors.Is(err, ErrDataEncoding) {
				continue
			}
			return Negotiated{}, err
		}
		return Negotiated{Data: b, Charset: charset, Encoding: enc}, nil
	}
	return Negotiated{}, &NoEncodingSupportedError{Tried: append([]string(nil), encodings...)}
}

// TryEncode runs Registry.TryEncode on the default registry.
func TryEncode(s string, charsets, encodings []string) (Negotiated, error) {
	return Default.TryEncode(s, charsets, encodings)
}
