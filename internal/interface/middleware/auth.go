package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	repo "github.com/inkpost/inkpost/internal/domain/repository"
	"github.com/inkpost/inkpost/pkg/helpers"
	"github.com/inkpost/inkpost/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the bearer token on protected routes and injects the
// resolved user id into the Gin context. Reads stay public; this middleware
// is only mounted on mutating and profile routes.
//
// The token alone proves identity (stateless session), but the subject is
// re-checked against the user store so a token for a vanished account is
// rejected before any resource logic runs.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "no token provided", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		if u, err := users.GetByID(c.Request.Context(), claims.UserID); err != nil || u == nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
