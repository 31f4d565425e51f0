package middleware

import (
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// AuthMiddleware requires a valid access token. Refresh tokens are rejected
// here; they are only accepted by the refresh endpoint itself.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(token, cfg.JWT.Secret)
		if err != nil || claims.TokenType != util.TokenAccess {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware attaches claims when a valid access token is present but
// lets anonymous requests through. Exam routes use it: anyone may take an
// exam, signed-in takers get their results tied to their account.
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" {
			if claims, err := util.ParseJWT(token, cfg.JWT.Secret); err == nil && claims.TokenType == util.TokenAccess {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}

// AdminMiddleware requires a valid admin token.
func AdminMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(token, cfg.JWT.Secret)
		if err != nil || claims.TokenType != util.TokenAdmin {
			util.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Set("admin", claims)
		c.Next()
	}
}
