package searchRoutes

import (
	"github.com/gofiber/fiber/v2"

	searchControllers "connectx/controllers/searchController"
	"connectx/middleware"
)

func SetupSearchRoutes(app *fiber.App) {
	app.Get("/api/search", middleware.JWTMiddleware, searchControllers.Search)
}
