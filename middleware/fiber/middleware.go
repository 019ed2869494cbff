package fibermw

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/middleware"
)

// LocalsKey is the fiber.Ctx locals key holding the cleaned value.
const LocalsKey = "goclean.cleaned"

// Clean decodes the raw request body, cleans it with f and stores the
// cleaned value under LocalsKey, or writes the mapped error response.
func Clean(f goclean.Field, opts ...middleware.Option) fiber.Handler {
	if f == nil {
		panic("fibermw: Clean requires a non-nil Field")
	}
	o := middleware.NewOptions(opts...)
	return func(c *fiber.Ctx) error {
		body := c.Request().Body()
		if o.MaxBodyBytes > 0 && int64(len(body)) > o.MaxBodyBytes {
			return reject(c, middleware.ErrBodyTooLarge, o)
		}
		data, err := middleware.DecodeBody(body, c.Get(fiber.HeaderContentType), c.Get(fiber.HeaderContentEncoding), o)
		if err == nil {
			data, err = goclean.Clean(c.UserContext(), f, data)
		}
		if err != nil {
			return reject(c, err, o)
		}
		c.Locals(LocalsKey, data)
		c.SetUserContext(middleware.ContextWithCleaned(c.UserContext(), data))
		return c.Next()
	}
}

func reject(c *fiber.Ctx, err error, o middleware.Options) error {
	o.Logger.Debug("request rejected", zap.String("path", c.Path()), zap.Error(err))
	return write(c, middleware.RenderError(err, c.Get(fiber.HeaderAcceptCharset), c.Get(fiber.HeaderAcceptEncoding), o))
}

// Cleaned fetches the value stored by Clean.
func Cleaned(c *fiber.Ctx) (any, bool) {
	return middleware.CleanedFromContext(c.UserContext())
}

// Respond writes v as negotiated JSON.
func Respond(c *fiber.Ctx, status int, v any, opts ...middleware.Option) error {
	o := middleware.NewOptions(opts...)
	res, err := middleware.Render(status, v, c.Get(fiber.HeaderAcceptCharset), c.Get(fiber.HeaderAcceptEncoding), o)
	if err != nil {
		res = middleware.RenderError(err, c.Get(fiber.HeaderAcceptCharset), c.Get(fiber.HeaderAcceptEncoding), o)
	}
	return write(c, res)
}

func write(c *fiber.Ctx, res middleware.Response) error {
	c.Set(fiber.HeaderContentType, res.ContentType())
	if res.Encoding != "" && res.Encoding != "identity" {
		c.Set(fiber.HeaderContentEncoding, res.Encoding)
	}
	c.Vary(fiber.HeaderAcceptCharset, fiber.HeaderAcceptEncoding)
	return c.Status(res.Status).Send(res.Body)
}
