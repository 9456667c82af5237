package middleware

import (
	"net/http"

	"github.com/collegeconnect/suggester-backend/internal/response"
	"github.com/collegeconnect/suggester-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// HasPermission reports whether the token claims carry the permission code.
func HasPermission(claims *service.Claims, code string) bool {
	if claims == nil {
		return false
	}
	for _, p := range claims.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// RequirePermission gates a route group on one permission code from the JWT.
func RequirePermission(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if !HasPermission(claims, code) {
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}
