package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheControl marks a response cacheable for maxAgeSeconds. Used on the
// catalog routes, whose data changes only when an import runs.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	value := "public, max-age=" + strconv.Itoa(maxAgeSeconds)
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
