package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key holding the request ID.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags every request with an ID so a suggestion query
// can be traced from access log to envelope. An incoming X-Request-ID is
// trusted and echoed; otherwise one is minted.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
