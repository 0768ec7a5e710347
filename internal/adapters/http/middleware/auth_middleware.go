package middleware

import (
	"strings"

	"campus-keyledger/internal/config"
	"campus-keyledger/internal/pkg/jwt"
	"campus-keyledger/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("isSuperuser", claims.IsSuperuser)

		return c.Next()
	}
}

// SuperuserOnly allows only superusers past
func SuperuserOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isSuperuser, ok := c.Locals("isSuperuser").(bool)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !isSuperuser {
			return response.Forbidden(c, "Superuser access required")
		}
		return c.Next()
	}
}
