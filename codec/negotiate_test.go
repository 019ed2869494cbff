package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goclean/codec"
)

func TestTryEncode_Gzip(t *testing.T) {
	n, err := codec.TryEncode("hello", []string{"utf-8"}, []string{"gzip", "identity"})
	require.NoError(t, err)
	assert.Equal(t, "utf-8", n.Charset)
	assert.Equal(t, "gzip", n.Encoding)

	plain, err := codec.DecodeData(n.Data, "gzip")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), plain)
}

func TestTryEncode_Defaults(t *testing.T) {
	n, err := codec.TryEncode("hello", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, codec.Negotiated{Data: []byte("hello"), Charset: "utf-8", Encoding: "identity"}, n)
}

func TestTryEncode_FallsBack(t *testing.T) {
	n, err := codec.TryEncode("héllo", []string{"klingon", "ascii", "latin-1"}, []string{"lzma", "identity"})
	require.NoError(t, err)
	assert.Equal(t, "latin-1", n.Charset)
	assert.Equal(t, "identity", n.Encoding)
	assert.Equal(t, []byte{'h', 0xe9, 'l', 'l', 'o'}, n.Data)
}

func TestTryEncode_NothingWorks(t *testing.T) {
	_, err := codec.TryEncode("日本", []string{"ascii", "latin-1"}, nil)
	var nc *codec.NoCharsetSupportedError
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, []string{"ascii", "latin-1"}, nc.Tried)
	assert.True(t, errors.Is(err, codec.ErrStringEncoding))
	assert.Equal(t, "No supported charset (tried 'ascii', 'latin-1')", err.Error())

	_, err = codec.TryEncode("x", nil, []string{"lzma"})
	var ne *codec.NoEncodingSupportedError
	require.ErrorAs(t, err, &ne)
	assert.True(t, errors.Is(err, codec.ErrDataEncoding))

	_, err = codec.TryEncode("x", []string{}, nil)
	require.ErrorAs(t, err, &nc)
}

func TestParseAccept(t *testing.T) {
	got := codec.ParseAccept("gzip;q=0.5, br, identity;q=0, *;q=0.1, bogus;q=x")
	assert.Equal(t, []string{"br", "gzip", "*"}, got)
	assert.Empty(t, codec.ParseAccept(""))
	assert.Equal(t, []string{"utf-8", "latin-1"}, codec.ParseAccept(" UTF-8 , latin-1 ; Q=1"))
}

func TestPreferences(t *testing.T) {
	supported := []string{"utf-8", "iso-8859-1"}
	assert.Equal(t, supported, codec.Preferences("", supported))
	assert.Equal(t, []string{"utf-8", "iso-8859-1"}, codec.Preferences("iso-8859-1;q=0.5, *", supported))
	assert.Equal(t, []string{"utf-16"}, codec.Preferences("utf-16, utf-8;q=0", supported))
}

func TestEncodingPreferences(t *testing.T) {
	supported := []string{"br", "gzip"}
	assert.Equal(t, []string{"identity"}, codec.EncodingPreferences("", supported))
	assert.Equal(t, []string{"br", "gzip", "identity"}, codec.EncodingPreferences("*", supported))
	assert.Equal(t, []string{"gzip", "identity"}, codec.EncodingPreferences("gzip", supported))
	assert.Equal(t, []string{"gzip"}, codec.EncodingPreferences("gzip, identity;q=0", supported))
	assert.Equal(t, []string{"gzip"}, codec.EncodingPreferences("gzip, *;q=0", supported))
	assert.Equal(t, []string{"identity", "gzip"}, codec.EncodingPreferences("identity, gzip;q=0.2", supported))
}

func TestPreferences_RefusingEverythingFailsNegotiation(t *testing.T) {
	charsets := codec.Preferences("utf-8;q=0", []string{"utf-8"})
	require.NotNil(t, charsets)
	assert.Empty(t, charsets)
	_, err := codec.TryEncode("x", charsets, nil)
	var nc *codec.NoCharsetSupportedError
	assert.ErrorAs(t, err, &nc)

	encodings := codec.EncodingPreferences("identity;q=0, *;q=0", []string{"gzip"})
	require.NotNil(t, encodings)
	assert.Empty(t, encodings)
	_, err = codec.TryEncode("x", nil, encodings)
	var ne *codec.NoEncodingSupportedError
	assert.ErrorAs(t, err, &ne)
}

func TestParseAccept_MalformedQualityDropped(t *testing.T) {
	assert.Equal(t, []string{"br"}, codec.ParseAccept("gzip;q=abc, br"))
	assert.Equal(t, []string{"br"}, codec.ParseAccept("gzip;q=1.5, br"))
	assert.Equal(t, []string{"br"}, codec.ParseAccept("gzip;q=-0.1, br"))
	assert.Equal(t, []string{"br", "identity"}, codec.EncodingPreferences("gzip;q=abc, br", []string{"gzip"}))
}
