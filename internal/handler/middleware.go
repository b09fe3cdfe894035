package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plantstore/pkg/token"
)

// AdminClaimsKey is the gin context key the decoded admin claims are
// stored under once the gate admits a request.
const AdminClaimsKey = "admin"

// AdminAuth admits only requests carrying a valid bearer token whose
// role claim is "admin". Missing or unverifiable tokens are 401; a
// valid token with any other role is 403. Nothing downstream runs on
// rejection.
func AdminAuth(tokens *token.Manager, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not Authorized. Please login again.",
			})
			return
		}

		raw := strings.TrimPrefix(authHeader, "Bearer ")
		if raw == authHeader || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not Authorized. Token missing.",
			})
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			log.Warn("Admin auth failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token. Please login again.",
			})
			return
		}

		if claims.Role != token.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access Denied. Not an Admin.",
			})
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}
