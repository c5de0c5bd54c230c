package middleware

import (
	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

// AdminMiddleware gates a route on role == "admin". The role is read
// from the database, not the token, so a demoted admin loses access
// without waiting for token expiry.
func AdminMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		if user.Role != "admin" {
			return utils.Forbidden(c, "Admin access required")
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
