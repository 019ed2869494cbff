package ginmw

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/middleware"
)

// Clean decodes the request body, cleans it with f and stores the cleaned
// value in the request context. Failures abort the chain with the mapped
// status and an error payload.
func Clean(f goclean.Field, opts ...middleware.Option) gin.HandlerFunc {
	if f == nil {
		panic("ginmw: Clean requires a non-nil Field")
	}
	o := middleware.NewOptions(opts...)
	return func(c *gin.Context) {
		data, err := middleware.ReadJSON(c.Request, o)
		if err == nil {
			data, err = goclean.Clean(c.Request.Context(), f, data)
		}
		if err != nil {
			o.Logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Error(err))
			middleware.WriteError(c.Writer, c.Request, err, o)
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithCleaned(c.Request.Context(), data))
		c.Next()
	}
}

// Cleaned fetches the value stored by Clean.
func Cleaned(c *gin.Context) (any, bool) {
	return middleware.CleanedFromContext(c.Request.Context())
}

// Respond writes v as negotiated JSON. Negotiation failures are written as
// error responses.
func Respond(c *gin.Context, status int, v any, opts ...middleware.Option) {
	o := middleware.NewOptions(opts...)
	if err := middleware.WriteJSON(c.Writer, c.Request, status, v, o); err != nil {
		middleware.WriteError(c.Writer, c.Request, err, o)
	}
}
