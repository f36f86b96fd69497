package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voucherhub/internal/repository"
	jwtpkg "voucherhub/pkg/jwt"
	"voucherhub/pkg/response"
)

const ContextKeyClaims = "principal_claims"

// JWTAuth validates the bearer token and rejects tokens revoked by logout.
func JWTAuth(jwtManager *jwtpkg.Manager, revocations repository.RevocationStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Error("revocation check failed", zap.Error(err))
			response.InternalError(c, "authentication unavailable")
			c.Abort()
			return
		}
		if revoked {
			response.Unauthorized(c, "token has been revoked")
			c.Abort()
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by JWTAuth.
func ClaimsFromContext(c *gin.Context) (*jwtpkg.Claims, bool) {
	claimsVal, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	return claims, ok
}
