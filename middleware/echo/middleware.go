package echomw

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/middleware"
)

// Clean decodes the request body, cleans it with f and stores the cleaned
// value in the request context, or writes the mapped error response.
func Clean(f goclean.Field, opts ...middleware.Option) echo.MiddlewareFunc {
	if f == nil {
		panic("echomw: Clean requires a non-nil Field")
	}
	o := middleware.NewOptions(opts...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			data, err := middleware.ReadJSON(req, o)
			if err == nil {
				data, err = goclean.Clean(req.Context(), f, data)
			}
			if err != nil {
				o.Logger.Debug("request rejected", zap.String("path", c.Path()), zap.Error(err))
				return write(c, middleware.RenderError(err, req.Header.Get("Accept-Charset"), req.Header.Get(echo.HeaderAcceptEncoding), o))
			}
			c.SetRequest(req.WithContext(middleware.ContextWithCleaned(req.Context(), data)))
			return next(c)
		}
	}
}

// Cleaned fetches the value stored by Clean.
func Cleaned(c echo.Context) (any, bool) {
	return middleware.CleanedFromContext(c.Request().Context())
}

// Respond writes v as negotiated JSON.
func Respond(c echo.Context, status int, v any, opts ...middleware.Option) error {
	o := middleware.NewOptions(opts...)
	req := c.Request()
	res, err := middleware.Render(status, v, req.Header.Get("Accept-Charset"), req.Header.Get(echo.HeaderAcceptEncoding), o)
	if err != nil {
		res = middleware.RenderError(err, req.Header.Get("Accept-Charset"), req.Header.Get(echo.HeaderAcceptEncoding), o)
	}
	return write(c, res)
}

func write(c echo.Context, res middleware.Response) error {
	res.Apply(c.Response().Header())
	return c.Blob(res.Status, res.ContentType(), res.Body)
}
