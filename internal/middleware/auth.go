package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/RazanRezq/munjiz/internal/auth"
	"github.com/RazanRezq/munjiz/pkg/errors"
	"github.com/RazanRezq/munjiz/pkg/response"
)

// Context keys populated by the Auth middleware.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth enforces bearer-token authentication using the supplied JWT service.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := jwt.ValidateSessionToken(strings.TrimSpace(authz[7:]))
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)

		c.Next()
	}
}
