package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetUserID reads the user_id set by the auth middleware. Handlers behind the
// middleware can assume it is present.
func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.ParseInt(c.Locals("user_id").(string), 10, 64)
	return userID
}
