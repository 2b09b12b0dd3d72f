// Package echomw adapts request body decoding to Echo.
package echomw

import (
	"github.com/labstack/echo/v4"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/middleware"
)

// DecodeJSON decodes the request body under opt (DefaultParseOpt when zero)
// and stores the result in the request context. Malformed bodies are
// answered with 400 and the error payload.
func DecodeJSON(opt bylawkit.ParseOpt) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			d, err := middleware.DecodeBody(req.Context(), req.Body, opt)
			if err != nil {
				return c.JSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			}
			c.SetRequest(req.WithContext(middleware.ContextWithDecoded(req.Context(), d)))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded body from c.
func GetDecoded(c echo.Context) (middleware.Decoded, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
