package codec_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/reoring/goclean/codec"
)

func TestEncodeDecode_RoundTripAllCodings(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 64)
	for _, enc := range []string{"identity", "gzip", "x-gzip", "deflate", "br", "zstd", " GZIP "} {
		t.Run(enc, func(t *testing.T) {
			b, err := codec.Encode(text, "utf-8", enc)
			require.NoError(t, err)
			if strings.TrimSpace(enc) != "identity" {
				assert.Less(t, len(b), len(text))
			}
			got, err := codec.Decode(b, "utf-8", enc)
			require.NoError(t, err)
			assert.Equal(t, text, got)
		})
	}
}

func TestEncode_EmptyNamesDefault(t *testing.T) {
	b, err := codec.Encode("ok", "", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), b)
}

func TestCharsets(t *testing.T) {
	b, err := codec.EncodeString("é", "latin-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe9}, b)

	s, err := codec.DecodeString([]byte{0xe9}, "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "é", s)

	b, err = codec.EncodeString("日本", "Shift_JIS")
	require.NoError(t, err)
	s, err = codec.DecodeString(b, "shift_jis")
	require.NoError(t, err)
	assert.Equal(t, "日本", s)

	b, err = codec.EncodeString("abc", "UTF8")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), b)
}

func TestCharsets_StrictFailures(t *testing.T) {
	_, err := codec.EncodeString("é", "ascii")
	var se *codec.StringEncodingError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codec.OpEncode, se.Op)
	assert.True(t, errors.Is(err, codec.ErrStringEncoding))
	assert.True(t, errors.Is(err, codec.ErrEncoding))
	assert.False(t, errors.Is(err, codec.ErrDataEncoding))

	_, err = codec.DecodeString([]byte{0xff, 0xfe}, "utf-8")
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codec.OpDecode, se.Op)

	_, err = codec.EncodeString("日", "latin-1")
	require.ErrorAs(t, err, &se)
}

func TestUnknownNames(t *testing.T) {
	_, err := codec.EncodeString("x", "klingon")
	var uc *codec.UnknownCharsetError
	require.ErrorAs(t, err, &uc)
	assert.Equal(t, "Unknown charset 'klingon'", err.Error())
	assert.True(t, errors.Is(err, codec.ErrStringEncoding))

	_, err = codec.EncodeData([]byte("x"), "lzma")
	var ue *codec.UnknownEncodingTypeError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "Unknown encoding type 'lzma'", err.Error())
	assert.True(t, errors.Is(err, codec.ErrDataEncoding))
}

func TestDecodeData_Corrupt(t *testing.T) {
	for _, enc := range []string{"gzip", "deflate", "zstd"} {
		_, err := codec.DecodeData([]byte("definitely not compressed"), enc)
		var de *codec.DataEncodingError
		require.ErrorAs(t, err, &de, enc)
		assert.Equal(t, codec.OpDecode, de.Op)
		assert.True(t, errors.Is(err, codec.ErrDataEncoding))
	}
}

func TestRegistry_CustomRegistrations(t *testing.T) {
	r := codec.NewRegistry()
	r.Contents.Register("rev", codec.ContentCodec{
		Encode: func(b []byte) ([]byte, error) { return reverse(b), nil },
		Decode: func(b []byte) ([]byte, error) { return reverse(b), nil },
	})
	r.Charsets.Register(codec.NewTextCharset("latin-9", charmap.ISO8859_15), "l9")
	b, err := r.Encode("abc", "utf-8", "REV")
	require.NoError(t, err)
	assert.Equal(t, []byte("cba"), b)
	assert.Contains(t, r.Contents.Names(), "rev")
	assert.Contains(t, r.Charsets.Names(), "l9")

	// the default registry is untouched
	_, err = codec.EncodeData([]byte("abc"), "rev")
	assert.Error(t, err)

	assert.Panics(t, func() { r.Contents.Register("bad", codec.ContentCodec{}) })
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

func TestDecodeLimit(t *testing.T) {
	big := make([]byte, 4<<20)
	for _, enc := range []string{"identity", "gzip", "deflate", "br", "zstd"} {
		t.Run(enc, func(t *testing.T) {
			packed, err := codec.EncodeData(big, enc)
			require.NoError(t, err)

			_, err = codec.Default.Contents.DecodeLimit(packed, enc, 1<<10)
			assert.ErrorIs(t, err, codec.ErrTooLarge)

			out, err := codec.Default.Contents.DecodeLimit(packed, enc, int64(len(big)))
			require.NoError(t, err)
			assert.Len(t, out, len(big))
		})
	}

	_, err := codec.Default.Contents.DecodeLimit([]byte("not gzip"), "gzip", 10)
	assert.True(t, errors.Is(err, codec.ErrDataEncoding))
	_, err = codec.Default.Contents.DecodeLimit(nil, "compress", 10)
	var ue *codec.UnknownEncodingTypeError
	assert.ErrorAs(t, err, &ue)
}

func TestDecodeLimit_CodecWithoutReader(t *testing.T) {
	r := codec.NewRegistry()
	r.Contents.Register("rev", codec.ContentCodec{
		Encode: func(b []byte) ([]byte, error) { return reverse(b), nil },
		Decode: func(b []byte) ([]byte, error) { return reverse(b), nil },
	})
	_, err := r.Contents.DecodeLimit([]byte("abcdef"), "rev", 3)
	assert.ErrorIs(t, err, codec.ErrTooLarge)
	out, err := r.Contents.DecodeLimit([]byte("abc"), "rev", 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("cba"), out)
}
