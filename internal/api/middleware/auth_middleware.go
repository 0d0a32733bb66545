package middleware

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	config "github.com/creatorflow/creatorflow-api/configs"
	"github.com/creatorflow/creatorflow-api/internal/service"
	"github.com/creatorflow/creatorflow-api/pkg/utils"
)

// AuthMiddleware accepts either the session cookie (JWT) or an api_key query
// parameter. Whichever authenticates sets user_id in the request locals.
type AuthMiddleware struct {
	s   service.ApiKeyService
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, s service.ApiKeyService) *AuthMiddleware {
	return &AuthMiddleware{s: s, cfg: cfg}
}

func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(m.cfg.CookieName)
		apiKey := c.Query("api_key")

		if cookie == "" && apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session cookie or API key",
			})
		}

		// API keys win when both are present. They are the programmatic path.
		if apiKey != "" {
			userID, err := m.s.GetUserID(c.Context(), apiKey)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			c.Locals("user_id", strconv.FormatInt(userID, 10))
			return c.Next()
		}

		claims, err := utils.ValidateToken(m.cfg.SecretKey, cookie)
		if err != nil {
			// Expired or forged cookie gets cleared so the client re-logs.
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})

			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}
