package legalRoutes

import (
	"github.com/gofiber/fiber/v2"

	legalControllers "connectx/controllers/legalController"
)

func SetupLegalRoutes(app *fiber.App) {
	legalGroup := app.Group("/api/legal")

	legalGroup.Get("/terms", legalControllers.Terms)
	legalGroup.Get("/privacy", legalControllers.Privacy)
}
