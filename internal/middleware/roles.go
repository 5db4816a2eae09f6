package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/municipalreports/backend/internal/dto"
	"github.com/municipalreports/backend/internal/models"
	"gorm.io/gorm"
)

// RoleRequired allows only users whose current DB role is in the given set.
// The role is re-read from the store so revocations take effect before the
// access token expires.
func RoleRequired(db *gorm.DB, roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Unauthorized",
			})
		}

		if user.IsBlocked {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: "Account has been blocked",
			})
		}

		if !allowed[user.Role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: "Insufficient permissions",
			})
		}

		return c.Next()
	}
}
