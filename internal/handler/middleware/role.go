package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwtpkg "voucherhub/pkg/jwt"
	"voucherhub/pkg/response"
)

// RequireRole lets the request through only for principals holding role.
// Must be used after JWTAuth middleware.
func RequireRole(role jwtpkg.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}

		if _, err := uuid.Parse(claims.Subject); err != nil {
			response.Unauthorized(c, "invalid subject")
			c.Abort()
			return
		}

		if claims.Role != role {
			response.Forbidden(c, string(role)+" access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
