package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	goclean "github.com/reoring/goclean"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// ReadJSON reads and decodes the body of r.
func ReadJSON(r *http.Request, o Options) (any, error) {
	if r.Body == nil {
		return DecodeBody(nil, r.Header.Get("Content-Type"), r.Header.Get("Content-Encoding"), o)
	}
	var body io.Reader = r.Body
	if o.MaxBodyBytes > 0 {
		body = io.LimitReader(r.Body, o.MaxBodyBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if o.MaxBodyBytes > 0 && int64(len(data)) > o.MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return DecodeBody(data, r.Header.Get("Content-Type"), r.Header.Get("Content-Encoding"), o)
}

// WriteJSON renders v for r and writes it with status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any, o Options) error {
	res, err := Render(status, v, r.Header.Get("Accept-Charset"), r.Header.Get("Accept-Encoding"), o)
	if err != nil {
		return err
	}
	write(w, res)
	return nil
}

// WriteError writes the error payload of err with its mapped status.
func WriteError(w http.ResponseWriter, r *http.Request, err error, o Options) {
	write(w, RenderError(err, r.Header.Get("Accept-Charset"), r.Header.Get("Accept-Encoding"), o))
}

func write(w http.ResponseWriter, res Response) {
	res.Apply(w.Header())
	w.WriteHeader(res.Status)
	_, _ = w.Write(res.Body)
}

// RequestID returns the id sent by the client or a fresh UUID.
func RequestID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// Handler serves h behind the full boundary: decode the body, clean it with
// f, call h, and negotiate the encoded response.
func Handler[R any](f goclean.Field, h goclean.Handler[R], opts ...Option) http.Handler {
	o := NewOptions(opts...)
	wrapped := goclean.Wrap(f, h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := RequestID(r)
		w.Header().Set(RequestIDHeader, id)
		log := o.Logger.With(
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		ctx := ContextWithRequestID(r.Context(), id)
		r = r.WithContext(ctx)

		data, err := ReadJSON(r, o)
		if err != nil {
			log.Debug("request body rejected", zap.Error(err), zap.Int("status", StatusFor(err)))
			WriteError(w, r, err, o)
			return
		}
		res, err := wrapped(ctx, data)
		if err != nil {
			var re *goclean.RequestError
			if errors.As(err, &re) {
				log.Debug("request validation failed", zap.String("pointer", goclean.Pointer(re.Cause)), zap.Error(re.Cause))
			} else {
				log.Error("handler failed", zap.Error(err))
			}
			WriteError(w, r, err, o)
			return
		}
		if err := WriteJSON(w, r, http.StatusOK, res, o); err != nil {
			log.Warn("response encoding failed", zap.Error(err))
			WriteError(w, r, err, o)
		}
	})
}

// Clean is net/http middleware that cleans the body with f and stores the
// result for next; see CleanedFromContext.
func Clean(f goclean.Field, opts ...Option) func(http.Handler) http.Handler {
	if f == nil {
		panic("middleware: Clean requires a non-nil Field")
	}
	o := NewOptions(opts...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := ReadJSON(r, o)
			if err == nil {
				data, err = goclean.Clean(r.Context(), f, data)
			}
			if err != nil {
				o.Logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
				WriteError(w, r, err, o)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithCleaned(r.Context(), data)))
		})
	}
}
