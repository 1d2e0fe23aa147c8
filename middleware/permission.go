package middleware

import (
	"github.com/gofiber/fiber/v2"

	"connectx/database"
	"connectx/models"
)

// RequireRole returns a middleware that only lets the listed roles through.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: Role not found",
				"data":    nil,
			})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}
}

// RequireAdmin allows college admins and super admins.
func RequireAdmin(c *fiber.Ctx) error {
	return RequireRole(models.RoleCollegeAdmin, models.RoleSuperAdmin)(c)
}

// RequireSuperAdmin allows super admins only.
func RequireSuperAdmin(c *fiber.Ctx) error {
	return RequireRole(models.RoleSuperAdmin)(c)
}

// RequireVerified blocks students who have not completed identity
// verification. Admin roles and bypassed users pass through.
func RequireVerified(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User ID not found",
			"data":    nil,
		})
	}

	var user models.User
	if err := database.Database.Db.First(&user, "id = ? AND is_deleted = false", userID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User not found",
			"data":    nil,
		})
	}

	if user.Role != models.RoleStudent || user.BypassVerified ||
		user.VerifiedStatus == models.VerifiedStatusApproved {
		return c.Next()
	}

	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"status":  false,
		"message": "Complete identity verification to access this resource!",
		"data":    nil,
	})
}
