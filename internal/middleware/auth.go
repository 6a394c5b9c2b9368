package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"parkhub/internal/domain"
	jwtsvc "parkhub/internal/pkg/jwt"
	"parkhub/internal/pkg/response"
)

// Auth validates the Bearer token and puts user_id and role on the context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// ActorRole returns the role Auth stored on the context, or the empty
// role when the request never went through Auth.
func ActorRole(c *gin.Context) domain.UserRole {
	if v, ok := c.Get("role"); ok {
		if role, ok := v.(domain.UserRole); ok {
			return role
		}
	}
	return ""
}
