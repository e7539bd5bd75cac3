package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(resolver Resolver) gin.HandlerFunc {
	_, static := resolver.(*StaticResolver)

	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httperr.Unauthorized(c, "UNAUTHORIZED", "invalid authorization header")
				c.Abort()
				return
			}
			token = parts[1]
		} else if !static {
			httperr.Unauthorized(c, "UNAUTHORIZED", "missing authorization header")
			c.Abort()
			return
		}

		id, err := resolver.Resolve(token)
		if err != nil {
			httperr.Unauthorized(c, "UNAUTHORIZED", "invalid token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, id.UserID)
		c.Set(ContextUserRole, id.Role)

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c).Role != role {
			httperr.FromError(c, domain.Forbidden())
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor reads the identity AuthMiddleware stored on the context.
func CurrentActor(c *gin.Context) domain.Actor {
	userID, _ := c.Get(ContextUserID)
	role, _ := c.Get(ContextUserRole)

	id, _ := userID.(uint)
	r, _ := role.(domain.Role)
	return domain.Actor{UserID: id, Role: r}
}
