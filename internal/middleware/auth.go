// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kilnworks/ceramics-backend/internal/identity"
	"github.com/kilnworks/ceramics-backend/internal/utils"
)

// AuthRequired extracts the caller's user id from the Authorization header
// through the given resolver and stores it in the request context. Requests
// rejected here never reach a handler, so no storage access happens for
// unauthenticated calls.
func AuthRequired(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthenticatedResponse(c, "Not authenticated")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthenticatedResponse(c, "Not authenticated")
			c.Abort()
			return
		}

		userID, err := resolver.Resolve(parts[1])
		if err != nil {
			utils.InvalidCredentialResponse(c)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
