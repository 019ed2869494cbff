package middleware

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/reoring/goclean/codec"
	"github.com/reoring/goclean/jsoncodec"
)

// DecodeBody turns a raw request body into a value tree. contentEncoding may
// list several codings; they are removed in reverse order. The charset
// parameter of contentType defaults to utf-8.
func DecodeBody(body []byte, contentType, contentEncoding string, o Options) (any, error) {
	data := body
	codings := strings.Split(contentEncoding, ",")
	for i := len(codings) - 1; i >= 0; i-- {
		name := strings.TrimSpace(codings[i])
		if name == "" {
			continue
		}
		out, err := o.Registry.Contents.DecodeLimit(data, name, o.MaxBodyBytes)
		if errors.Is(err, codec.ErrTooLarge) {
			return nil, ErrBodyTooLarge
		}
		if err != nil {
			return nil, err
		}
		data = out
	}
	s, err := o.Registry.Charsets.Decode(data, charsetOf(contentType))
	if err != nil {
		return nil, err
	}
	return jsoncodec.FromJSONString(s, o.JSON...)
}

func charsetOf(contentType string) string {
	if contentType == "" {
		return codec.DefaultCharset
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" {
		return codec.DefaultCharset
	}
	return params["charset"]
}

// Response is an encoded JSON response that any framework can write.
type Response struct {
	Status   int
	Charset  string
	Encoding string
	Body     []byte
}

// ContentType is the Content-Type header value of the response.
func (r Response) ContentType() string { return "application/json; charset=" + r.Charset }

// Apply sets the representation headers of the response on h.
func (r Response) Apply(h http.Header) {
	h.Set("Content-Type", r.ContentType())
	if r.Encoding != "" && r.Encoding != codec.DefaultEncoding {
		h.Set("Content-Encoding", r.Encoding)
	}
	h.Add("Vary", "Accept-Charset")
	h.Add("Vary", "Accept-Encoding")
	h.Set("Content-Length", strconv.Itoa(len(r.Body)))
}

// Render serializes v and negotiates its charset and content coding against
// the client's Accept-Charset and Accept-Encoding headers.
func Render(status int, v any, acceptCharset, acceptEncoding string, o Options) (Response, error) {
	s, err := jsoncodec.ToJSONString(v, o.JSON...)
	if err != nil {
		return Response{}, err
	}
	n, err := o.Registry.TryEncode(s,
		codec.Preferences(acceptCharset, o.Charsets),
		codec.EncodingPreferences(acceptEncoding, o.Encodings))
	if err != nil {
		return Response{}, err
	}
	return Response{Status: status, Charset: n.Charset, Encoding: n.Encoding, Body: n.Data}, nil
}

// RenderError renders the error payload of err. When negotiation is what
// failed, or the payload cannot be negotiated, the body falls back to plain
// utf-8 JSON.
func RenderError(err error, acceptCharset, acceptEncoding string, o Options) Response {
	status := StatusFor(err)
	payload := ErrorPayload(err)
	if status != http.StatusNotAcceptable {
		if r, rerr := Render(status, payload, acceptCharset, acceptEncoding, o); rerr == nil {
			return r
		}
	}
	body, jerr := jsoncodec.ToJSONBytes(payload)
	if jerr != nil {
		body = []byte(`{"error":"internal error"}`)
	}
	return Response{Status: status, Charset: codec.DefaultCharset, Encoding: codec.DefaultEncoding, Body: body}
}
