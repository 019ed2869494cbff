package codec

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// ContentCodec is one HTTP content coding. Reader is optional; when set,
// DecodeLimit streams through it and stops once the limit is passed.
type ContentCodec struct {
	Encode func([]byte) ([]byte, error)
	Decode func([]byte) ([]byte, error)
	Reader func(io.Reader) (io.ReadCloser, error)
}

// ErrTooLarge is returned by DecodeLimit when the decoded data exceeds the
// limit.
var ErrTooLarge = errors.New("decoded data exceeds size limit")

// Identity passes data through unchanged.
var Identity = ContentCodec{
	Encode: func(b []byte) ([]byte, error) { return b, nil },
	Decode: func(b []byte) ([]byte, error) { return b, nil },
	Reader: func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil },
}

// Gzip is the gzip coding (RFC 1952).
var Gzip = ContentCodec{Encode: gzipEncode, Decode: gzipDecode, Reader: gzipReader}

// Deflate is the "deflate" HTTP coding: a zlib stream (RFC 1950).
var Deflate = ContentCodec{Encode: zlibEncode, Decode: zlibDecode, Reader: zlib.NewReader}

// Brotli is the br coding (RFC 7932).
var Brotli = ContentCodec{Encode: brotliEncode, Decode: brotliDecode, Reader: brotliReader}

// Zstd is the zstd coding (RFC 8878).
var Zstd = ContentCodec{Encode: zstdEncode, Decode: zstdDecode, Reader: zstdReader}

func gzipEncode(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	return finish(&buf, w, b)
}

func gzipReader(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }

func gzipDecode(b []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func zlibEncode(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, err
	}
	return finish(&buf, w, b)
}

func zlibDecode(b []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func brotliEncode(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	return finish(&buf, brotli.NewWriterLevel(&buf, brotli.BestCompression), b)
}

func brotliReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}

func brotliDecode(b []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(b)))
}

func finish(buf *bytes.Buffer, w io.WriteCloser, b []byte) ([]byte, error) {
	if _, err := w.Write(b); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// The zstd encoder and decoder are safe for concurrent EncodeAll/DecodeAll
// and expensive to build, so one pair is shared.
var (
	zstdOnce sync.Once
	zstdEnc  *zstd.Encoder
	zstdDec  *zstd.Decoder
	zstdErr  error
)

func zstdInit() {
	zstdOnce.Do(func() {
		zstdEnc, zstdErr = zstd.NewWriter(nil)
		if zstdErr != nil {
			return
		}
		zstdDec, zstdErr = zstd.NewReader(nil)
	})
}

func zstdEncode(b []byte) ([]byte, error) {
	zstdInit()
	if zstdErr != nil {
		return nil, zstdErr
	}
	return zstdEnc.EncodeAll(b, nil), nil
}

// zstdMaxWindow is the largest window accepted from HTTP zstd streams.
const zstdMaxWindow = 8 << 20

// zstdReader builds a streaming decoder per call; the shared decoder only
// serves DecodeAll.
func zstdReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxWindow(zstdMaxWindow))
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

func zstdDecode(b []byte) ([]byte, error) {
	zstdInit()
	if zstdErr != nil {
		return nil, zstdErr
	}
	return zstdDec.DecodeAll(b, nil)
}

// ContentRegistry resolves content coding names.
type ContentRegistry struct {
	mu     sync.RWMutex
	byName map[string]ContentCodec
}

// NewContentRegistry returns a registry with identity, gzip (and x-gzip),
// deflate, br and zstd.
func NewContentRegistry() *ContentRegistry {
	r := &ContentRegistry{byName: map[string]ContentCodec{}}
	r.Register("identity", Identity)
	r.Register("gzip", Gzip)
	r.Register("x-gzip", Gzip)
	r.Register("deflate", Deflate)
	r.Register("br", Brotli)
	r.Register("zstd", Zstd)
	return r
}

// Register adds or replaces the codec for name. It panics when either
// function is nil.
func (r *ContentRegistry) Register(name string, c ContentCodec) {
	if c.Encode == nil || c.Decode == nil {
		panic("codec: ContentCodec requires Encode and Decode")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[normalizeName(name)] = c
}

// Lookup resolves name or returns *UnknownEncodingTypeError.
func (r *ContentRegistry) Lookup(name string) (ContentCodec, error) {
	r.mu.RLock()
	c, ok := r.byName[normalizeName(name)]
	r.mu.RUnlock()
	if !ok {
		return ContentCodec{}, &UnknownEncodingTypeError{Encoding: name}
	}
	return c, nil
}

// Names lists the registered codings in sorted order.
func (r *ContentRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Encode applies the content coding to b.
func (r *ContentRegistry) Encode(b []byte, encoding string) ([]byte, error) {
	c, err := r.Lookup(encoding)
	if err != nil {
		return nil, err
	}
	out, err := c.Encode(b)
	if err != nil {
		return nil, &DataEncodingError{Encoding: encoding, Op: OpEncode, Cause: err}
	}
	return out, nil
}

// Decode removes the content coding from b.
func (r *ContentRegistry) Decode(b []byte, encoding string) ([]byte, error) {
	c, err := r.Lookup(encoding)
	if err != nil {
		return nil, err
	}
	out, err := c.Decode(b)
	if err != nil {
		return nil, &DataEncodingError{Encoding: encoding, Op: OpDecode, Cause: err}
	}
	return out, nil
}

// DecodeLimit is Decode that fails with ErrTooLarge as soon as the decoded
// data passes max bytes. Codecs without a Reader are decoded whole and
// checked afterwards. max <= 0 disables the limit.
func (r *ContentRegistry) DecodeLimit(b []byte, encoding string, max int64) ([]byte, error) {
	if max <= 0 {
		return r.Decode(b, encoding)
	}
	c, err := r.Lookup(encoding)
	if err != nil {
		return nil, err
	}
	if c.Reader == nil {
		out, err := r.Decode(b, encoding)
		if err != nil {
			return nil, err
		}
		if int64(len(out)) > max {
			return nil, ErrTooLarge
		}
		return out, nil
	}
	rc, err := c.Reader(bytes.NewReader(b))
	if err != nil {
		return nil, &DataEncodingError{Encoding: encoding, Op: OpDecode, Cause: err}
	}
	defer rc.Close()
	out, err := io.ReadAll(io.LimitReader(rc, max+1))
	if err != nil {
		return nil, &DataEncodingError{Encoding: encoding, Op: OpDecode, Cause: err}
	}
	if int64(len(out)) > max {
		return nil, ErrTooLarge
	}
	return out, nil
}
