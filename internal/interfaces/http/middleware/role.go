package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lendledger/backend/internal/domain/identity"
)

// RequireRole returns a middleware that allows only the given roles.
// It must be placed after the JWT middleware so the role claim is
// already in the context. Requests without a valid role get 401,
// requests with a disallowed role get 403.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		roleStr := GetJWTRole(c)
		if roleStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		role, err := identity.ParseRole(roleStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Unknown role",
				},
			})
			return
		}

		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions for this operation",
				},
			})
			return
		}

		c.Next()
	}
}
