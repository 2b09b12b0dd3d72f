// Package ginmw adapts request body decoding to Gin.
package ginmw

import (
	"github.com/gin-gonic/gin"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/middleware"
)

// DecodeJSON decodes the request body under opt (DefaultParseOpt when zero)
// and stores the result in the request context. Malformed bodies abort with
// 400 and the error payload.
func DecodeJSON(opt bylawkit.ParseOpt) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := middleware.DecodeBody(c.Request.Context(), c.Request.Body, opt)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), d))
		c.Next()
	}
}

// GetDecoded fetches the decoded body from c.
func GetDecoded(c *gin.Context) (middleware.Decoded, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
