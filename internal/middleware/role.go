package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/store-rating/internal/httperr"
	"github.com/BruksfildServices01/store-rating/internal/models"
)

// RequireRole lets the request through only when the authenticated role is
// one of roles. It must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	message := forbiddenMessage(roles)

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			httperr.Unauthorized(c, ReasonMissingToken, "Access denied. No token provided.")
			return
		}

		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}

		httperr.ForbiddenResponse(c, "forbidden", message)
	}
}

func forbiddenMessage(roles []models.Role) string {
	if len(roles) == 1 {
		switch roles[0] {
		case models.RoleAdmin:
			return "Access denied. Admin privileges required."
		case models.RoleStoreOwner:
			return "Access denied. Store owner privileges required."
		}
	}
	return "Access denied."
}
